package newsletter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/gg-eng/portfolio-api/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *kv.Memory) {
	t.Helper()
	store := kv.NewMemory()
	return NewService(store), store
}

func getSubscriberRecord(t *testing.T, store *kv.Memory, email string) domain.Subscriber {
	t.Helper()
	raw, err := store.Get(context.Background(), domain.SubscriberKey(email))
	require.NoError(t, err)
	var sub domain.Subscriber
	require.NoError(t, json.Unmarshal(raw, &sub))
	return sub
}

func TestSubscribe_NewEmail_ReturnsToken(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	sub := getSubscriberRecord(t, store, "a@example.com")
	assert.False(t, sub.Confirmed)
	assert.Equal(t, token, sub.ConfirmationToken)
	assert.False(t, sub.SubscribedAt.IsZero())

	// Ticket written under its own namespace with a back-reference.
	raw, err := store.Get(ctx, domain.TicketKey(token))
	require.NoError(t, err)
	var ticket domain.ConfirmationTicket
	require.NoError(t, json.Unmarshal(raw, &ticket))
	assert.Equal(t, "a@example.com", ticket.Email)
	assert.WithinDuration(t, time.Now().Add(domain.TicketTTL), ticket.ExpiresAt, time.Minute)
}

func TestSubscribe_UnconfirmedAgain_ReturnsSameToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	second, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSubscribe_AlreadyConfirmed_FailsWithoutWrites(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, token)
	require.NoError(t, err)

	before := getSubscriberRecord(t, store, "a@example.com")
	_, err = svc.Subscribe(ctx, "a@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadySubscribed))
	assert.Equal(t, before, getSubscriberRecord(t, store, "a@example.com"))
}

func TestSubscribe_NilStore_ReturnsNotConfigured(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Subscribe(context.Background(), "a@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
	assert.False(t, errors.Is(err, domain.ErrAlreadySubscribed))
}

func TestConfirm_MarksConfirmedAndClearsToken(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)

	email, err := svc.Confirm(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)

	sub := getSubscriberRecord(t, store, "a@example.com")
	assert.True(t, sub.Confirmed)
	assert.Empty(t, sub.ConfirmationToken)

	// The stored JSON must not carry a token field at all once confirmed.
	raw, err := store.Get(ctx, domain.SubscriberKey("a@example.com"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "confirmationToken")

	// Ticket is gone.
	_, err = store.Get(ctx, domain.TicketKey(token))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestConfirm_Twice_SecondFailsWithInvalidToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, token)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestConfirm_UnknownToken_FailsWithInvalidToken(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Confirm(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestConfirm_ExpiredTicket_DeletedAndFailsConsistently(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)

	// Rewrite the ticket with a past expiry, as if 24h elapsed.
	expired := domain.ConfirmationTicket{
		Email:     "a@example.com",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	raw, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, domain.TicketKey(token), raw, 0))

	_, err = svc.Confirm(ctx, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTokenExpired))

	// Ticket removed; retrying fails too, just with the not-found flavor.
	_, err = store.Get(ctx, domain.TicketKey(token))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = svc.Confirm(ctx, token)
	assert.True(t, errors.Is(err, domain.ErrInvalidToken))
}

func TestConfirm_TicketOutlivesSubscriber_ReportsSubscriberNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	require.NoError(t, svc.Unsubscribe(ctx, "a@example.com"))

	_, err = svc.Confirm(ctx, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSubscriberNotFound))
}

func TestUnsubscribe_RemovesFromConfirmedList_AndIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Unsubscribe(ctx, "a@example.com"))
	emails, err := svc.ConfirmedSubscribers(ctx)
	require.NoError(t, err)
	assert.NotContains(t, emails, "a@example.com")

	assert.NoError(t, svc.Unsubscribe(ctx, "a@example.com"))
}

func TestConfirmedSubscribers_EndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tokenA, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, tokenA)
	require.NoError(t, err)

	// b subscribes but never confirms.
	_, err = svc.Subscribe(ctx, "b@example.com")
	require.NoError(t, err)

	emails, err := svc.ConfirmedSubscribers(ctx)
	require.NoError(t, err)

	count := 0
	for _, e := range emails {
		if e == "a@example.com" {
			count++
		}
	}
	assert.Equal(t, 1, count, "a@example.com should appear exactly once")
	assert.NotContains(t, emails, "b@example.com")
}

func TestConfirmedSubscribers_SkipsMalformedRecords(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	token, err := svc.Subscribe(ctx, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, token)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, domain.SubscriberKey("broken@example.com"), []byte("{not json"), 0))

	emails, err := svc.ConfirmedSubscribers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, emails)
}

func TestConfirmURL(t *testing.T) {
	assert.Equal(t,
		"https://gg-eng.me/v1/newsletter/confirm?token=abc",
		ConfirmURL("https://gg-eng.me/", "abc"))
}
