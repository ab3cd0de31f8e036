package email

import (
	"context"
	"fmt"
	"sync"
)

// MockSender is an in-memory Sender for tests.
type MockSender struct {
	mu sync.Mutex

	// SendFunc allows customizing send behavior
	SendFunc func(ctx context.Context, email *Email) (string, error)

	// Sent records every email passed to Send
	Sent []*Email
}

// NewMockSender creates a new mock email sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the email and returns a synthetic message ID.
func (m *MockSender) Send(ctx context.Context, email *Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, email)
	}

	m.Sent = append(m.Sent, email)
	return fmt.Sprintf("mock-%d", len(m.Sent)), nil
}

// SentCount returns how many emails were recorded.
func (m *MockSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// LastSent returns the most recently recorded email, or nil.
func (m *MockSender) LastSent() *Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	return m.Sent[len(m.Sent)-1]
}

var _ Sender = (*MockSender)(nil)
var _ Sender = (*SMTPSender)(nil)
