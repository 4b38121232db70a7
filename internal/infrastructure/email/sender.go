package email

import (
	"context"
	"log/slog"
)

// Attachment is a file attached to an outgoing email.
type Attachment struct {
	Filename string
	Content  []byte
}

// Sender delivers transactional emails. Implementations report only
// success/failure; delivery status beyond that is never inspected.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
	SendWithAttachment(ctx context.Context, to, replyTo, subject, htmlBody string, att Attachment) error
}

// LogSender logs emails instead of sending them — used when no API key is
// configured (local development).
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, _ string) error {
	slog.Info("email (log sender)", "to", to, "subject", subject)
	return nil
}

func (LogSender) SendWithAttachment(_ context.Context, to, _, subject, _ string, att Attachment) error {
	slog.Info("email with attachment (log sender)", "to", to, "subject", subject, "attachment", att.Filename)
	return nil
}
