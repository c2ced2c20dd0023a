package verify

import "errors"

var (
	// ErrNotVerified means the remote answered but did not issue a token.
	ErrNotVerified = errors.New("location is not verified")
	// ErrUnavailable means the remote could not be reached or timed out.
	ErrUnavailable = errors.New("verification service unavailable")
	// ErrInvalidConfig is returned by New for an unusable configuration.
	ErrInvalidConfig = errors.New("invalid verification configuration")
)
