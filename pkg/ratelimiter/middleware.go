package ratelimiter

import (
	"encoding/json"
	"hash/fnv"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/cities/pkg/logger"
)

// maxKeyLength bounds storage key length; longer keys are hashed.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// IP keys requests by client address. Behind a proxy, run chi's RealIP
// middleware first so RemoteAddr holds the client address.
func IP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Static returns a KeyFunc that always yields key, e.g. to namespace a route group.
func Static(key string) KeyFunc {
	return func(*http.Request) string { return key }
}

// Composite joins the non-empty keys of keyFuncs with ":".
// Keys longer than 64 bytes are replaced by their FNV-1a hash.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	log     *slog.Logger
	limited http.HandlerFunc
	failed  http.HandlerFunc
}

// WithLogger logs store failures.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLimitedHandler replaces the default 429 response.
// Rate limit headers are already set when it runs.
func WithLimitedHandler(h http.HandlerFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.limited = h
		}
	}
}

// WithFailureHandler replaces the default 500 response written when the store fails.
func WithFailureHandler(h http.HandlerFunc) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.failed = h
		}
	}
}

// Middleware takes one token per request from the bucket of keyFunc(r).
// Requests over the limit get 429 with Retry-After.
func Middleware(b *Bucket, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		log:     slog.New(slog.DiscardHandler),
		limited: messageHandler(http.StatusTooManyRequests, "Too Many Requests"),
		failed:  messageHandler(http.StatusInternalServerError, "Server Error"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)

			result, err := b.Allow(r.Context(), key)
			if err != nil {
				cfg.log.ErrorContext(r.Context(), "rate limit check failed",
					logger.Component("ratelimiter"),
					logger.Error(err),
				)
				cfg.failed(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed() {
				// Rounded up so clients never retry early.
				secs := int(math.Ceil(result.RetryAfter().Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				cfg.limited(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func messageHandler(status int, msg string) http.HandlerFunc {
	body, _ := json.Marshal(map[string]string{"msg": msg})
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(append(body, '\n'))
	}
}
