package mongo

import (
	"context"
	"errors"
)

// Healthcheck returns a health check function suitable for readiness probes.
//
// It goes through the cache, so a probe on a cold process opens the shared
// connection instead of a separate one, then pings the server.
func (c *Cache) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		h, err := c.Get(ctx)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := h.Client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
