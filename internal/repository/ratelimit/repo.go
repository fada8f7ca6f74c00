// Package ratelimit implements a hard fixed-window request limiter over the
// shared store's atomic counters. Multiple service instances sharing one
// store share one budget; no in-process locking is involved.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/attorney-tools/codesearch/internal/domain"
)

// store is the consumer interface for counter operations (ISP).
type store interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Limiter admits up to N requests per caller per wall-clock second.
//
// This is a hard fixed window, not a sliding one: a caller can legally burst
// to 2N requests across a second boundary (N at the tail of second T, N at
// the head of T+1). That asymmetry is an accepted property of the design.
type Limiter struct {
	store     store
	keyPrefix string
	limit     int64
	now       func() time.Time
}

// New creates a limiter admitting limit requests per caller per second.
func New(s store, keyPrefix string, limit int) *Limiter {
	return &Limiter{store: s, keyPrefix: keyPrefix, limit: int64(limit), now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow records one request for the caller in the current one-second window
// and reports whether it is within the limit. The increment always commits
// atomically; a caller timeout after commit affects only decision delivery.
// Store failure is an error so the gate can fail closed.
func (l *Limiter) Allow(ctx context.Context, callerID string) (bool, error) {
	key := l.keyPrefix + "rate:" + callerID + ":" + strconv.FormatInt(l.now().Unix(), 10)

	count, err := l.store.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	// Expiry is advisory cleanup, not correctness: the key encodes its
	// second, so a stale key lingering one extra second never under-counts.
	if err := l.store.Expire(ctx, key, time.Second, true); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	return count <= l.limit, nil
}
