// Package ratelimiter provides token bucket rate limiting with pluggable
// storage and HTTP middleware.
//
// A Bucket allows bursts up to Config.Capacity and adds Config.RefillRate
// tokens every Config.RefillInterval. State lives in a Store: MemoryStore for
// a single instance, RedisStore when several instances must share limits.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	if err != nil {
//		return err
//	}
//	r.Use(ratelimiter.Middleware(bucket, ratelimiter.IP))
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response, and Retry-After on 429 responses.
//
// Denied requests do not consume tokens, so a client that keeps retrying while
// limited regains access at the next refill.
package ratelimiter
