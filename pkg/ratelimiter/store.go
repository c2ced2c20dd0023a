package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state. Implementations must make ConsumeTokens atomic per key.
type Store interface {
	// ConsumeTokens refills the bucket for key, takes tokens from it and
	// returns what is left. A negative remainder means the request is denied.
	// Consuming 0 tokens only refills.
	ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, err error)

	// Reset forgets the bucket for key.
	Reset(ctx context.Context, key string) error
}

// refill applies the token bucket arithmetic shared by all stores.
// It returns the new token count and refill time.
func refill(tokens int, lastRefill, now time.Time, cfg Config) (int, time.Time) {
	elapsed := now.Sub(lastRefill)
	if elapsed < cfg.RefillInterval {
		return tokens, lastRefill
	}
	// Capped so a long idle period cannot overflow.
	maxIntervals := int64(cfg.Capacity/cfg.RefillRate + 1)
	intervals := int(min(int64(elapsed/cfg.RefillInterval), maxIntervals))
	return min(tokens+intervals*cfg.RefillRate, cfg.Capacity), now
}
