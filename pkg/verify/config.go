package verify

import (
	"fmt"
	"net/url"
	"time"
)

// Config describes the remote verification endpoint. An empty URL disables it.
type Config struct {
	URL     string        `env:"VERIFY_URL"`                       // endpoint receiving {"key": ...}
	APIKey  string        `env:"VERIFY_API_KEY"`                   // fixed key sent on every call
	Timeout time.Duration `env:"VERIFY_TIMEOUT" envDefault:"10s"` // bound for one call
}

// Enabled reports whether an endpoint is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// Validate checks an enabled configuration. A disabled one is always valid.
func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: only http and https schemes are supported", ErrInvalidConfig)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: host is required", ErrInvalidConfig)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: api key is required", ErrInvalidConfig)
	}
	return nil
}
