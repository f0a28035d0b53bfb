package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig describes the outgoing mail server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Insecure bool // allow plaintext connections (local relays, test servers)
}

// SMTPSender sends drafts through an SMTP server and saves them to disk
type SMTPSender struct {
	cfg       SMTPConfig
	renderPDF PDFRenderer
}

// NewSMTPSender creates an SMTPSender. renderPDF may be nil when drafts are never saved as PDF.
func NewSMTPSender(cfg SMTPConfig, renderPDF PDFRenderer) *SMTPSender {
	return &SMTPSender{cfg: cfg, renderPDF: renderPDF}
}

// CreateDraft assembles msg
func (s *SMTPSender) CreateDraft(_ context.Context, msg Message) (*Draft, error) {
	return NewDraft(msg)
}

// SaveAs writes draft to path
func (s *SMTPSender) SaveAs(ctx context.Context, draft *Draft, path string) error {
	return SaveDraft(ctx, draft, path, s.renderPDF)
}

// Send delivers draft to its recipients
func (s *SMTPSender) Send(ctx context.Context, draft *Draft) error {
	if len(draft.Message.To) == 0 {
		return fmt.Errorf("draft %s has no recipients", draft.ID)
	}

	opts := []gomail.Option{gomail.WithPort(s.cfg.Port)}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	if s.cfg.Insecure {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client for %s: %w", s.cfg.Host, err)
	}
	if err := client.DialAndSendWithContext(ctx, draft.msg); err != nil {
		return fmt.Errorf("failed to send draft %s: %w", draft.ID, err)
	}
	return nil
}

// DraftOnlySender saves drafts but refuses to send them
type DraftOnlySender struct {
	renderPDF PDFRenderer
}

// NewDraftOnlySender creates a DraftOnlySender
func NewDraftOnlySender(renderPDF PDFRenderer) *DraftOnlySender {
	return &DraftOnlySender{renderPDF: renderPDF}
}

// CreateDraft assembles msg
func (s *DraftOnlySender) CreateDraft(_ context.Context, msg Message) (*Draft, error) {
	return NewDraft(msg)
}

// SaveAs writes draft to path
func (s *DraftOnlySender) SaveAs(ctx context.Context, draft *Draft, path string) error {
	return SaveDraft(ctx, draft, path, s.renderPDF)
}

// Send always fails with ErrSendDisabled
func (s *DraftOnlySender) Send(context.Context, *Draft) error {
	return ErrSendDisabled
}
