// Package kv defines the key-value store capability the application is built
// against: per-key get/put/delete plus a prefix listing, with optional per-key
// expiry. The store is treated as eventually consistent shared state — no
// read-after-write guarantee beyond "the store eventually reflects the last
// acknowledged write", and no cross-key transactions. Callers that need
// multi-key consistency must tolerate the races themselves.
package kv

import (
	"context"
	"time"
)

// Store is the minimal key-value contract. Implementations report an absent
// key from Get as an error wrapping domain.ErrNotFound. Delete of a missing
// key is not an error. List returns key names only, in no particular order.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes value under key. A ttl of zero means no expiry; a positive
	// ttl is a hint to the store to purge the key after that duration.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}
