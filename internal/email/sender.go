package email

import "context"

// Sender is the interface that all email providers must implement.
// This abstraction allows swapping email providers (SendGrid, Gmail, etc.)
// without changing business logic, and lets tests substitute a recording
// double for the real provider client.
type Sender interface {
	// Send sends an email to the specified recipient.
	Send(ctx context.Context, msg Message) error
}

// Message represents an email message to be sent. The sender address is not
// part of the message: each provider injects the configured From address, so
// nothing request-derived can ever set it.
type Message struct {
	To      string // recipient email address
	Subject string // email subject
	Text    string // plain-text body (omitted from the outbound call when empty)
	HTML    string // HTML body (omitted from the outbound call when empty)
}
