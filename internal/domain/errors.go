package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")

	// ErrNotConfigured signals a missing or unreachable backing service
	// (KV store, email sender). Operations fail without side effects.
	ErrNotConfigured = errors.New("service not configured")

	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrInvalidToken       = errors.New("invalid or expired confirmation token")
	ErrTokenExpired       = errors.New("confirmation token has expired")
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrDeliveryFailure reports a failed email send. Store writes made
	// before the send are intentionally left in place.
	ErrDeliveryFailure = errors.New("email delivery failed")
)
