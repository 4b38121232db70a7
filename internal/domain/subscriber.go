package domain

import "time"

// KV key namespaces. Subscriber records and confirmation tickets live under
// distinct prefixes so a prefix scan over subscribers never enumerates tickets.
// The layout is a compatibility contract with already-persisted data.
const (
	SubscriberKeyPrefix = "subscriber:"
	TicketKeyPrefix     = "ticket:"
)

// TicketTTL is how long a confirmation link stays valid. The same value is
// passed to the store as a per-key expiry hint so unread tickets are purged
// even if the confirmation link is never clicked.
const TicketTTL = 24 * time.Hour

// Subscriber is a newsletter subscriber record, keyed by email as submitted.
// ConfirmationToken is present only while the subscription is unconfirmed;
// a confirmed record never carries one.
type Subscriber struct {
	Email             string    `json:"email"`
	SubscribedAt      time.Time `json:"subscribedAt"`
	Confirmed         bool      `json:"confirmed"`
	ConfirmationToken string    `json:"confirmationToken,omitempty"`
}

// ConfirmationTicket is keyed by its token, separately from the subscriber
// record. Possession of the token is the capability to confirm; it does not
// prove ownership of the email address.
type ConfirmationTicket struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the ticket's confirmation window has passed.
func (t ConfirmationTicket) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

func SubscriberKey(email string) string { return SubscriberKeyPrefix + email }
func TicketKey(token string) string     { return TicketKeyPrefix + token }
