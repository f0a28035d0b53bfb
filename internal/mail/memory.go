package mail

import "context"

// MemorySender keeps drafts in memory; it never touches the filesystem or the network
type MemorySender struct {
	Drafts []*Draft
	Saved  map[string]*Draft // path -> draft
	Sent   []*Draft

	// SendErr, when set, is returned by Send
	SendErr error
}

// NewMemorySender creates an empty MemorySender
func NewMemorySender() *MemorySender {
	return &MemorySender{Saved: make(map[string]*Draft)}
}

// CreateDraft records and returns a new draft
func (m *MemorySender) CreateDraft(_ context.Context, msg Message) (*Draft, error) {
	d, err := NewDraft(msg)
	if err != nil {
		return nil, err
	}
	m.Drafts = append(m.Drafts, d)
	return d, nil
}

// SaveAs records that draft was saved under path
func (m *MemorySender) SaveAs(_ context.Context, draft *Draft, path string) error {
	m.Saved[path] = draft
	return nil
}

// Send records draft as sent, or returns SendErr
func (m *MemorySender) Send(_ context.Context, draft *Draft) error {
	if m.SendErr != nil {
		return m.SendErr
	}
	m.Sent = append(m.Sent, draft)
	return nil
}
