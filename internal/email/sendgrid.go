package email

import (
	"context"
	"fmt"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridConfig holds the configuration for the SendGrid email sender.
type SendGridConfig struct {
	// APIKey is the SendGrid API key.
	APIKey string
	// SenderAddress is the email address emails are sent from.
	SenderAddress string
	// SenderName is the display name for the sender.
	SenderName string
}

// SendGridSender implements Sender using the SendGrid v3 mail API.
type SendGridSender struct {
	client        *sendgrid.Client
	senderAddress string
	senderName    string
}

// NewSendGridSender creates a new SendGridSender. The client is configured
// once with the API key; it is safe for concurrent use.
func NewSendGridSender(cfg SendGridConfig) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid: API key is required")
	}
	if cfg.SenderAddress == "" {
		return nil, fmt.Errorf("sendgrid: sender address is required")
	}

	return &SendGridSender{
		client:        sendgrid.NewSendClient(cfg.APIKey),
		senderAddress: cfg.SenderAddress,
		senderName:    cfg.SenderName,
	}, nil
}

// Send sends an email via the SendGrid API. Empty Text/HTML parts are left
// out of the request entirely rather than sent as empty content blocks.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.senderName, s.senderAddress))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	m.AddPersonalizations(p)

	if msg.Text != "" {
		m.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: send rejected with status %d: %s", resp.StatusCode, resp.Body)
	}

	return nil
}
