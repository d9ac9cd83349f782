package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid sends transactional email through the SendGrid v3 API.
type SendGrid struct {
	client   *sendgrid.Client
	from     *mail.Email
	sandbox  bool
	endpoint string
}

type SendGridOption func(*SendGrid)

// WithSandbox makes SendGrid validate messages without delivering them.
func WithSandbox() SendGridOption {
	return func(s *SendGrid) {
		s.sandbox = true
	}
}

func NewSendGrid(apiKey, fromEmail, fromName string, opts ...SendGridOption) *SendGrid {
	s := &SendGrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SendGrid) buildMessage(to, subject, plain, html string) *mail.SGMailV3 {
	msg := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), plain, html)
	if s.sandbox {
		settings := mail.NewMailSettings()
		settings.SetSandboxMode(mail.NewSetting(true))
		msg.SetMailSettings(settings)
	}
	return msg
}

func (s *SendGrid) SendEmail(ctx context.Context, to, subject, plain, html string) error {
	resp, err := s.client.SendWithContext(ctx, s.buildMessage(to, subject, plain, html))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}
