package email

import (
	"context"
	"sync"
)

// MockSender implements Sender without making network calls. It records
// every message it is asked to deliver and returns a configurable error,
// which makes it usable both as a test double and as the dry-run backend
// for the mailctl CLI.
type MockSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

// NewMockSender constructs a MockSender that succeeds on every Send.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Fail makes every subsequent Send return err. Passing nil restores
// successful delivery.
func (m *MockSender) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Send records the message and returns the configured outcome.
func (m *MockSender) Send(ctx context.Context, msg Message) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

// Sent returns a copy of the messages delivered so far.
func (m *MockSender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
