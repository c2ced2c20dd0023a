package ratelimiter

import "errors"

var (
	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid rate limiter configuration")

	// ErrInvalidTokenCount indicates that the requested token count is invalid.
	ErrInvalidTokenCount = errors.New("invalid token count")

	// ErrContextCancelled indicates that the request context ended before the check.
	ErrContextCancelled = errors.New("context cancelled")

	// ErrStoreUnavailable wraps store failures.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")
)
