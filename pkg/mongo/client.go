package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Handle is an open client together with the logical database it was opened for.
type Handle struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials the server described by cfg and verifies the connection with a ping.
// Failed tries are retried up to cfg.RetryAttempts times, cfg.RetryInterval apart,
// until ctx is done. cfg.ConnectTimeout is split between the tries so a server
// that never answers still gets every try. Every failure is wrapped with
// ErrFailedToConnectToMongo.
func Connect(ctx context.Context, cfg Config) (*Handle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	attempts := max(cfg.RetryAttempts, 1)
	tryTimeout := perTryTimeout(cfg.ConnectTimeout, cfg.RetryInterval, attempts)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetRetryWrites(cfg.RetryWrites).
		SetRetryReads(cfg.RetryReads).
		// Nested documents decode to maps so free-form fields render as JSON objects.
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if tryTimeout > 0 {
		opts.SetConnectTimeout(tryTimeout).SetServerSelectionTimeout(tryTimeout)
	}

	var lastErr error
	tries := 0
	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFailedToConnectToMongo, triesErr(tries, lastErr), ctx.Err())
			case <-time.After(cfg.RetryInterval):
			}
		}

		tries++
		h, err := dial(ctx, opts, cfg.Database, tryTimeout)
		if err != nil {
			lastErr = err
			continue
		}
		return h, nil
	}

	return nil, errors.Join(ErrFailedToConnectToMongo, triesErr(tries, lastErr))
}

// dial opens a client and pings it within timeout, if positive.
func dial(ctx context.Context, opts *options.ClientOptions, database string, timeout time.Duration) (*Handle, error) {
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}
	return &Handle{Client: client, DB: client.Database(database)}, nil
}

// perTryTimeout divides total between attempts after reserving the pauses.
// A zero total means tries are bounded by the caller's context only.
func perTryTimeout(total, interval time.Duration, attempts int) time.Duration {
	if total <= 0 {
		return 0
	}
	n := time.Duration(attempts)
	if budget := total - interval*(n-1); budget > 0 {
		return budget / n
	}
	return total / n
}

func triesErr(tries int, err error) error {
	return fmt.Errorf("gave up after %d tries: %w", tries, err)
}
