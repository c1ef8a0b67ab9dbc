package ratelimit

import (
	"context"
	"time"
)

// Store records request timestamps per key and counts how many fall inside
// the current window. Implementations must be safe for concurrent use.
type Store interface {
	// CountSince returns how many recorded requests for key are at or after
	// since. Implementations may prune older entries while counting.
	CountSince(ctx context.Context, key string, since time.Time) (int, error)
	// Record stores one request timestamp for key. The ttl hints how long the
	// entry is worth keeping.
	Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error
}

// Limiter enforces a sliding-window request limit on top of a Store.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

type Option func(*Limiter)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New builds a limiter allowing at most limit requests per window per key.
func New(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether another request fits the window and, when it does,
// records it. A denied request is not recorded so waiting callers are not
// penalized further.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()
	count, err := l.store.CountSince(ctx, key, now.Add(-l.window))
	if err != nil {
		return false, err
	}
	if count >= l.limit {
		return false, nil
	}
	if err := l.store.Record(ctx, key, now, l.window); err != nil {
		return false, err
	}
	return true, nil
}
