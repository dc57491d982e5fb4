package services

import (
	"context"
	"fmt"
	"time"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// RateLimiter is a fixed-window counter on the cache. The first increment in
// a window sets the TTL; later increments within the window reuse it and the
// counter vanishes when the TTL elapses. The increment and the TTL set are
// not atomic against two simultaneous first hits; the slight over-permission
// window is accepted.
type RateLimiter struct {
	cache domain.CacheStore
}

// NewRateLimiter creates a rate limiter over the given cache store
func NewRateLimiter(cache domain.CacheStore) *RateLimiter {
	return &RateLimiter{cache: cache}
}

// Hit increments the counter for key and returns the post-increment count.
// The caller compares the count against its own threshold.
func (l *RateLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := l.cache.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate counter: %w", err)
	}

	if count == 1 {
		if err := l.cache.Expire(ctx, key, window); err != nil {
			return 0, fmt.Errorf("failed to start rate window: %w", err)
		}
	}

	return count, nil
}
