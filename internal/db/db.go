// Package db defines the shared key-value store contract. The store carries
// caller tokens, per-second rate counters, and the catalog listing cache.
package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides the key-value operations this service needs.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Incr atomically increments the counter at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
	// Expire sets TTL on a key. When nx=true, sets TTL only if the key has
	// no expiry yet (EXPIRE NX).
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
