// Package email sends transactional mail: order confirmations, shipping
// notifications, and contact form acknowledgements.
package email

import "context"

// Email is one outbound message.
type Email struct {
	To          []string
	From        string
	Subject     string
	TextBody    string
	HTMLBody    string // optional; text-only mail is fine
	Attachments []Attachment
	Headers     map[string]string
}

// Attachment is a file attached to an Email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Sender delivers an Email and returns the provider's message ID when one
// is available. The SMTP sender is the production implementation; tests
// use the mock.
type Sender interface {
	Send(ctx context.Context, email *Email) (string, error)
}
