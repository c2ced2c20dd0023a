package mongo

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/cities/pkg/logger"
)

// Connector opens a new Handle. Connect is the default implementation.
type Connector func(ctx context.Context, cfg Config) (*Handle, error)

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithConnector replaces the function used to open the connection.
// Nil connectors are ignored.
func WithConnector(fn Connector) CacheOption {
	return func(c *Cache) {
		if fn != nil {
			c.connect = fn
		}
	}
}

// WithLogger sets the logger used to report connection attempts.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// Cache owns a single lazily opened Handle shared by every request in the process.
//
// The handle is created on the first Get. Concurrent cold-start callers share one
// in-flight attempt instead of dialing on their own. A successful handle is kept
// for the lifetime of the Cache; a failed attempt is forgotten so the next Get
// tries again.
//
// Construct it once at startup and inject it where a database is needed.
type Cache struct {
	cfg     Config
	connect Connector
	log     *slog.Logger

	handle   atomic.Pointer[Handle]
	flight   singleflight.Group
	attempts atomic.Int64

	mu     sync.Mutex // orders publishing a handle against Close
	closed bool
}

const flightKey = "connect"

// NewCache returns a Cache for cfg. No connection is opened until the first Get.
func NewCache(cfg Config, opts ...CacheOption) *Cache {
	c := &Cache{
		cfg:     cfg,
		connect: Connect,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached handle, opening it first if needed.
//
// If ctx ends while the caller waits on an in-flight attempt, Get returns early;
// the attempt itself keeps running for the remaining callers, bounded by
// Config.ConnectTimeout. All failures wrap ErrConnection. After Close, Get
// fails with ErrCacheClosed.
func (c *Cache) Get(ctx context.Context) (*Handle, error) {
	if h := c.handle.Load(); h != nil {
		return h, nil
	}
	if c.isClosed() {
		return nil, errors.Join(ErrConnection, ErrCacheClosed)
	}

	ch := c.flight.DoChan(flightKey, func() (any, error) {
		// A previous flight may have finished between the Load above and this call.
		if h := c.handle.Load(); h != nil {
			return h, nil
		}
		return c.open(ctx)
	})

	select {
	case <-ctx.Done():
		return nil, errors.Join(ErrConnection, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, errors.Join(ErrConnection, res.Err)
		}
		return res.Val.(*Handle), nil
	}
}

// open runs one connection attempt detached from the triggering caller's
// cancellation, since other callers may be waiting on the same attempt.
func (c *Cache) open(ctx context.Context) (*Handle, error) {
	attemptCtx := context.WithoutCancel(ctx)
	if c.cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(attemptCtx, c.cfg.ConnectTimeout)
		defer cancel()
	}

	n := c.attempts.Add(1)
	start := time.Now()
	h, err := c.connect(attemptCtx, c.cfg)
	if err == nil && h == nil {
		err = errors.New("connector returned nil handle")
	}
	if err != nil {
		c.log.WarnContext(ctx, "mongo connection attempt failed",
			logger.Component("mongo"),
			logger.Event("connect_failed"),
			logger.Error(err),
			slog.Int64("attempt", n),
			logger.Duration(time.Since(start)),
		)
		return nil, err
	}

	if !c.publish(h) {
		c.log.InfoContext(ctx, "mongo connection discarded, cache closed",
			logger.Component("mongo"),
			logger.Event("connect_discarded"),
			slog.Int64("attempt", n),
		)
		if h.Client != nil {
			_ = h.Client.Disconnect(context.WithoutCancel(ctx))
		}
		return nil, ErrCacheClosed
	}
	c.log.InfoContext(ctx, "mongo connection established",
		logger.Component("mongo"),
		logger.Event("connected"),
		slog.String("database", c.cfg.Database),
		slog.Int64("attempt", n),
		logger.Duration(time.Since(start)),
	)
	return h, nil
}

// publish stores h unless the cache has been closed.
func (c *Cache) publish(h *Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.handle.Store(h)
	return true
}

func (c *Cache) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Attempts reports how many connection attempts have been started.
func (c *Cache) Attempts() int64 {
	return c.attempts.Load()
}

// Ready reports whether a handle has been established.
func (c *Cache) Ready() bool {
	return c.handle.Load() != nil
}

// Close disconnects the cached client, if any. It is safe to call more than once
// and on a Cache that never connected. A connection that completes after Close
// is disconnected instead of cached.
func (c *Cache) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	h := c.handle.Swap(nil)
	c.mu.Unlock()
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.Disconnect(ctx)
}
