// Package newsletter owns the double opt-in subscription lifecycle against
// the key-value store. It is the only component that reads or writes
// subscriber records and confirmation tickets.
package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/gg-eng/portfolio-api/internal/kv"
	pkgtoken "github.com/gg-eng/portfolio-api/internal/pkg/token"
)

type Service interface {
	// Subscribe registers email and returns the confirmation token the caller
	// should deliver by email. Calling it again for the same unconfirmed email
	// returns the existing token (idempotent resend); a confirmed email fails
	// with domain.ErrAlreadySubscribed.
	Subscribe(ctx context.Context, email string) (token string, err error)
	// Confirm redeems a confirmation token. A second call with the same token
	// finds the ticket already deleted and fails with domain.ErrInvalidToken.
	Confirm(ctx context.Context, token string) (email string, err error)
	// Unsubscribe deletes the subscriber record. Idempotent.
	Unsubscribe(ctx context.Context, email string) error
	// ConfirmedSubscribers returns all confirmed emails in no particular order.
	ConfirmedSubscribers(ctx context.Context) ([]string, error)
}

type service struct {
	store kv.Store
}

// NewService builds the subscription manager. A nil store is tolerated:
// every operation then fails with domain.ErrNotConfigured, which callers must
// distinguish from business-rule failures.
func NewService(store kv.Store) Service {
	return &service{store: store}
}

func (s *service) Subscribe(ctx context.Context, email string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("kv store: %w", domain.ErrNotConfigured)
	}

	existing, err := s.getSubscriber(ctx, email)
	switch {
	case err == nil:
		if existing.Confirmed {
			return "", domain.ErrAlreadySubscribed
		}
		// Unconfirmed: hand back the existing token so the caller can resend
		// the confirmation email instead of minting a new ticket.
		return existing.ConfirmationToken, nil
	case errors.Is(err, domain.ErrNotFound):
		// First subscribe for this email.
	default:
		return "", fmt.Errorf("get subscriber: %w", err)
	}

	token, err := pkgtoken.NewConfirmationToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	sub := domain.Subscriber{
		Email:             email,
		SubscribedAt:      now,
		Confirmed:         false,
		ConfirmationToken: token,
	}
	ticket := domain.ConfirmationTicket{
		Email:     email,
		ExpiresAt: now.Add(domain.TicketTTL),
	}

	// Two separate writes with no transaction across them. Two concurrent
	// subscribes for the same email can both land here; last writer wins on
	// the subscriber key and the losing ticket either confirms the same
	// record or expires unused.
	if err := s.putJSON(ctx, domain.SubscriberKey(email), sub, 0); err != nil {
		return "", fmt.Errorf("put subscriber: %w", err)
	}
	if err := s.putJSON(ctx, domain.TicketKey(token), ticket, domain.TicketTTL); err != nil {
		return "", fmt.Errorf("put ticket: %w", err)
	}
	return token, nil
}

func (s *service) Confirm(ctx context.Context, token string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("kv store: %w", domain.ErrNotConfigured)
	}

	raw, err := s.store.Get(ctx, domain.TicketKey(token))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("get ticket: %w", err)
	}
	var ticket domain.ConfirmationTicket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return "", fmt.Errorf("decode ticket: %w", err)
	}

	if ticket.Expired(time.Now()) {
		// Delete before reporting so a retry with the same token fails the
		// same way rather than resurrecting a dead ticket.
		if err := s.store.Delete(ctx, domain.TicketKey(token)); err != nil {
			return "", fmt.Errorf("delete expired ticket: %w", err)
		}
		return "", domain.ErrTokenExpired
	}

	sub, err := s.getSubscriber(ctx, ticket.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Ticket outlived its subscriber (e.g. unsubscribed in between).
			return "", domain.ErrSubscriberNotFound
		}
		return "", fmt.Errorf("get subscriber: %w", err)
	}

	sub.Confirmed = true
	sub.ConfirmationToken = ""
	if err := s.putJSON(ctx, domain.SubscriberKey(ticket.Email), sub, 0); err != nil {
		return "", fmt.Errorf("put subscriber: %w", err)
	}
	if err := s.store.Delete(ctx, domain.TicketKey(token)); err != nil {
		return "", fmt.Errorf("delete ticket: %w", err)
	}
	return ticket.Email, nil
}

func (s *service) Unsubscribe(ctx context.Context, email string) error {
	if s.store == nil {
		return fmt.Errorf("kv store: %w", domain.ErrNotConfigured)
	}
	// Any outstanding ticket for this email is left alone; it points at a
	// record that no longer exists and expires on its own.
	if err := s.store.Delete(ctx, domain.SubscriberKey(email)); err != nil {
		return fmt.Errorf("delete subscriber: %w", err)
	}
	return nil
}

func (s *service) ConfirmedSubscribers(ctx context.Context) ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("kv store: %w", domain.ErrNotConfigured)
	}
	keys, err := s.store.List(ctx, domain.SubscriberKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}

	// One round-trip per key. Fine at this subscriber count; a maintained
	// index would be needed well before it isn't.
	var emails []string
	for _, key := range keys {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue // deleted between list and get
			}
			return nil, fmt.Errorf("get %q: %w", key, err)
		}
		var sub domain.Subscriber
		if err := json.Unmarshal(raw, &sub); err != nil {
			slog.Warn("skipping malformed subscriber record", "key", key, "err", err)
			continue
		}
		if sub.Confirmed {
			emails = append(emails, sub.Email)
		}
	}
	return emails, nil
}

func (s *service) getSubscriber(ctx context.Context, email string) (domain.Subscriber, error) {
	raw, err := s.store.Get(ctx, domain.SubscriberKey(email))
	if err != nil {
		return domain.Subscriber{}, err
	}
	var sub domain.Subscriber
	if err := json.Unmarshal(raw, &sub); err != nil {
		return domain.Subscriber{}, fmt.Errorf("decode subscriber %q: %w", email, err)
	}
	return sub, nil
}

func (s *service) putJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, key, raw, ttl)
}

// ConfirmURL builds the link embedded in confirmation emails.
func ConfirmURL(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/v1/newsletter/confirm?token=" + token
}
