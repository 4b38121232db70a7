// Package contact handles CV requests from the contact form: it fetches the
// localized CV PDF from object storage and emails it to the requester.
package contact

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/gg-eng/portfolio-api/internal/infrastructure/email"
)

// CVStore fetches the CV PDFs. Satisfied by the S3 store.
type CVStore interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

type Service interface {
	// RequestCV emails the localized CV to req.Email and best-effort notifies
	// the site owner. A failed delivery reports domain.ErrDeliveryFailure.
	RequestCV(ctx context.Context, req domain.CVRequest) error
}

type service struct {
	cvStore       CVStore
	mailer        email.Sender
	personalEmail string
}

func NewService(cvStore CVStore, mailer email.Sender, personalEmail string) Service {
	return &service{cvStore: cvStore, mailer: mailer, personalEmail: personalEmail}
}

func cvFilename(lang domain.Language) string {
	if lang == domain.LangSpanish {
		return "German_Gomez_es.pdf"
	}
	return "German_Gomez_en.pdf"
}

func (s *service) RequestCV(ctx context.Context, req domain.CVRequest) error {
	if s.mailer == nil || s.cvStore == nil {
		return fmt.Errorf("email or cv storage: %w", domain.ErrNotConfigured)
	}

	filename := cvFilename(domain.Language(req.Language))
	pdf, err := s.cvStore.Fetch(ctx, "cv/"+filename)
	if err != nil {
		return fmt.Errorf("fetch cv: %w", err)
	}

	subject, html := email.CVEmail(req, s.personalEmail)
	att := email.Attachment{Filename: filename, Content: pdf}
	if err := s.mailer.SendWithAttachment(ctx, req.Email, s.personalEmail, subject, html, att); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}

	// Owner notification is best-effort; the requester already has the CV.
	if s.personalEmail != "" {
		notifSubject, notifHTML := email.CVNotificationEmail(req, time.Now().UTC())
		if err := s.mailer.Send(ctx, s.personalEmail, notifSubject, notifHTML); err != nil {
			slog.Warn("cv request notification failed", "err", err)
		}
	}
	return nil
}
