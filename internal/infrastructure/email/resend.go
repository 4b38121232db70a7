package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers emails through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

func (s *ResendSender) SendWithAttachment(ctx context.Context, to, replyTo, subject, htmlBody string, att Attachment) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		ReplyTo: replyTo,
		Subject: subject,
		Html:    htmlBody,
		Attachments: []*resend.Attachment{
			{Filename: att.Filename, Content: att.Content},
		},
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send with attachment: %w", err)
	}
	return nil
}
