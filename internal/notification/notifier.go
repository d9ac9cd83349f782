// Package notification delivers one-time codes over SMS and email.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, plain, html string) error
}

// Notifier renders OTP messages and hands them to the channel sender.
type Notifier struct {
	sms     SMSSender
	email   EmailSender
	appName string
	logger  *slog.Logger
}

func NewNotifier(sms SMSSender, email EmailSender, appName string, logger *slog.Logger) *Notifier {
	return &Notifier{sms: sms, email: email, appName: appName, logger: logger}
}

// SendOTP delivers code to the recipient. The code itself is never logged.
func (n *Notifier) SendOTP(ctx context.Context, channel Channel, to, code string, expiresAt time.Time) error {
	minutes := int(time.Until(expiresAt).Round(time.Minute).Minutes())
	if minutes < 1 {
		minutes = 1
	}
	var err error
	switch channel {
	case ChannelSMS:
		err = n.sms.SendSMS(ctx, to, fmt.Sprintf("Your %s code is %s. It expires in %d minutes.", n.appName, code, minutes))
	case ChannelEmail:
		subject := fmt.Sprintf("Your %s verification code", n.appName)
		plain := fmt.Sprintf("Your verification code is %s.\nIt expires in %d minutes. If you did not request it, ignore this email.", code, minutes)
		html := fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes. If you did not request it, ignore this email.</p>", code, minutes)
		err = n.email.SendEmail(ctx, to, subject, plain, html)
	default:
		return fmt.Errorf("unsupported channel %q", channel)
	}
	if err != nil {
		return fmt.Errorf("send %s otp: %w", channel, err)
	}
	if n.logger != nil {
		n.logger.InfoContext(ctx, "otp dispatched", "channel", channel, "to", mask(to))
	}
	return nil
}

// mask keeps the first two and last two characters of an address.
func mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

// LogSender writes messages to the log instead of delivering them. It is
// wired when no SMS queue or email key is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (l LogSender) SendSMS(ctx context.Context, to, body string) error {
	l.Logger.InfoContext(ctx, "sms delivery disabled, message dropped", "to", mask(to), "length", len(body))
	return nil
}

func (l LogSender) SendEmail(ctx context.Context, to, subject, _, _ string) error {
	l.Logger.InfoContext(ctx, "email delivery disabled, message dropped", "to", mask(to), "subject", subject)
	return nil
}
