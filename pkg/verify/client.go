package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrymomot/cities/pkg/logger"
)

// maxResponseSize caps how much of a response is read.
const maxResponseSize = 64 << 10

// maxLoggedBody caps how much of a rejected response is logged.
const maxLoggedBody = 200

// Client exchanges a fixed API key for a location token.
//
// The remote's answer is treated as data only: a token string on success,
// anything else is a failure. Response bodies are never evaluated.
type Client struct {
	cfg     Config
	client  *http.Client
	log     *slog.Logger
	breaker *breaker
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

// WithLogger sets the logger for rejected and failed calls.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// WithBreaker opens the circuit after threshold consecutive failures and
// rejects calls with ErrUnavailable for cooldown.
func WithBreaker(threshold int, cooldown time.Duration) Option {
	return func(cl *Client) {
		if threshold > 0 && cooldown > 0 {
			cl.breaker = newBreaker(threshold, cooldown)
		}
	}
}

// New returns a Client for an enabled, valid cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			// Redirects could send the key to another host.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log:     slog.New(slog.DiscardHandler),
		breaker: newBreaker(5, 30*time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type request struct {
	Key string `json:"key"`
}

type response struct {
	Token json.RawMessage `json:"token"`
}

// Verify posts the API key and returns the issued token.
//
// It returns ErrNotVerified when the remote answers without a string token or
// with a non-2xx status, and ErrUnavailable on transport failures, timeouts
// and while the circuit is open.
func (c *Client) Verify(ctx context.Context) (string, error) {
	if !c.breaker.allow() {
		return "", fmt.Errorf("%w: circuit open", ErrUnavailable)
	}

	token, err := c.call(ctx)
	switch {
	case ctx.Err() != nil:
		// The caller gave up; says nothing about the remote.
	case errors.Is(err, ErrUnavailable):
		c.breaker.failure()
	default:
		c.breaker.success()
	}
	return token, err
}

func (c *Client) call(ctx context.Context) (string, error) {
	payload, err := json.Marshal(request{Key: c.cfg.APIKey})
	if err != nil {
		return "", err
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.WarnContext(ctx, "verification request failed",
			logger.Component("verify"),
			logger.Error(err),
			logger.Duration(time.Since(start)),
		)
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WarnContext(ctx, "verification rejected",
			logger.Component("verify"),
			logger.Status(resp.StatusCode),
			slog.String("body", sanitize(body)),
			logger.Duration(time.Since(start)),
		)
		return "", fmt.Errorf("%w: status %d", ErrNotVerified, resp.StatusCode)
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: malformed response", ErrNotVerified)
	}
	var token string
	if err := json.Unmarshal(out.Token, &token); err != nil || token == "" {
		return "", ErrNotVerified
	}
	return token, nil
}

// sanitize flattens and truncates an untrusted body for logging.
func sanitize(body []byte) string {
	s := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return ' '
		}
		return r
	}, string(body))
	if len(s) <= maxLoggedBody {
		return s
	}
	s = s[:maxLoggedBody]
	// Drop a rune split by the cut.
	for len(s) > 0 {
		if r, size := utf8.DecodeLastRuneInString(s); r != utf8.RuneError || size != 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s + "..."
}
