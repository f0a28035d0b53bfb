// Package mail creates, saves and sends the e-mails produced by a batch run.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
)

// ErrSendDisabled is returned by senders that can only produce drafts
var ErrSendDisabled = errors.New("sending is disabled: no SMTP server configured")

// Compile-time interface checks.
var (
	_ Sender = (*SMTPSender)(nil)
	_ Sender = (*DraftOnlySender)(nil)
	_ Sender = (*MemorySender)(nil)
)

// Message is the content of one e-mail
type Message struct {
	From     string
	To       []string
	Subject  string
	HTMLBody string
}

// Draft is a message that has been assembled but not necessarily sent
type Draft struct {
	ID      string
	Message Message

	msg *gomail.Msg
}

// Sender is the mail collaborator of a batch run
type Sender interface {
	CreateDraft(ctx context.Context, msg Message) (*Draft, error)
	SaveAs(ctx context.Context, draft *Draft, path string) error
	Send(ctx context.Context, draft *Draft) error
}

// NewDraft builds the MIME message for msg
func NewDraft(msg Message) (*Draft, error) {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, &AddressError{Address: msg.From, Cause: err}
	}
	if len(msg.To) > 0 {
		if err := m.To(msg.To...); err != nil {
			return nil, &AddressError{Address: fmt.Sprint(msg.To), Cause: err}
		}
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	return &Draft{
		ID:      uuid.NewString(),
		Message: msg,
		msg:     m,
	}, nil
}
