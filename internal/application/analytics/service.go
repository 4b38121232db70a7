// Package analytics maintains hourly event counters and short-lived detailed
// event records in the key-value store. Tracking is best-effort: it must
// never break the request that triggered it.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gg-eng/portfolio-api/internal/domain"
	"github.com/gg-eng/portfolio-api/internal/kv"
	"github.com/gg-eng/portfolio-api/internal/pkg/id"
)

const (
	counterTTL  = 30 * 24 * time.Hour
	eventLogTTL = 7 * 24 * time.Hour
)

type Service interface {
	// Track increments the hourly counter for the event's type and stores a
	// detailed event record for debugging. No-op when no store is wired.
	Track(ctx context.Context, event domain.AnalyticsEvent) error
	// Metrics returns the hourly breakdown for date (YYYY-MM-DD) keyed as
	// "<type>:<hour>".
	Metrics(ctx context.Context, date string) (map[string]int, error)
	// TotalForDate sums one event type across all hours of date.
	TotalForDate(ctx context.Context, eventType domain.EventType, date string) (int, error)
}

type service struct {
	store kv.Store
}

func NewService(store kv.Store) Service {
	return &service{store: store}
}

// counterKey format: analytics:YYYY-MM-DD:HH:event_type
func counterKey(date string, hour int, eventType domain.EventType) string {
	return fmt.Sprintf("analytics:%s:%d:%s", date, hour, eventType)
}

func (s *service) Track(ctx context.Context, event domain.AnalyticsEvent) error {
	if s.store == nil {
		return nil
	}

	at := time.UnixMilli(event.Timestamp).UTC()
	key := counterKey(at.Format("2006-01-02"), at.Hour(), event.Type)

	// Read-modify-write with no compare-and-swap: concurrent increments can
	// lose updates. Acceptable for rough traffic counters.
	count := 1
	if raw, err := s.store.Get(ctx, key); err == nil {
		if n, perr := strconv.Atoi(string(raw)); perr == nil {
			count = n + 1
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("get counter: %w", err)
	}
	if err := s.store.Put(ctx, key, []byte(strconv.Itoa(count)), counterTTL); err != nil {
		return fmt.Errorf("put counter: %w", err)
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	eventKey := fmt.Sprintf("event:%d:%s", event.Timestamp, id.New())
	if err := s.store.Put(ctx, eventKey, raw, eventLogTTL); err != nil {
		return fmt.Errorf("put event record: %w", err)
	}
	return nil
}

func (s *service) Metrics(ctx context.Context, date string) (map[string]int, error) {
	if s.store == nil {
		return map[string]int{}, nil
	}
	metrics := make(map[string]int)
	for hour := 0; hour < 24; hour++ {
		for _, eventType := range domain.EventTypes {
			n, err := s.readCounter(ctx, counterKey(date, hour, eventType))
			if err != nil {
				return nil, err
			}
			metrics[fmt.Sprintf("%s:%d", eventType, hour)] = n
		}
	}
	return metrics, nil
}

func (s *service) TotalForDate(ctx context.Context, eventType domain.EventType, date string) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	total := 0
	for hour := 0; hour < 24; hour++ {
		n, err := s.readCounter(ctx, counterKey(date, hour, eventType))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (s *service) readCounter(ctx context.Context, key string) (int, error) {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get counter %q: %w", key, err)
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, nil // malformed counter counts as zero
	}
	return n, nil
}
