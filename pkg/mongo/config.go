package mongo

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config represents the configuration for the database.
type Config struct {
	URI             string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/medisynix"` // URI is the connection target, credentials included.
	Database        string        `env:"MONGODB_DB" envDefault:"medisynix"`                            // Database is the logical database name.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`                     // ConnectTimeout bounds a whole connection attempt, retries included.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`                       // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"0"`                         // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`                 // MaxConnIdleTime is the maximum time that a connection can remain idle in the connection pool.
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`                       // RetryWrites specifies whether the driver retries write operations.
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`                        // RetryReads specifies whether the driver retries read operations.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`                        // RetryAttempts is the number of dial+ping tries within one connection attempt.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"1s"`                       // RetryInterval is the pause between tries.
}

// Validate reports configuration that can never produce a working connection.
// Call it at startup so a broken deployment fails before serving traffic.
func (c Config) Validate() error {
	uri := strings.TrimSpace(c.URI)
	if uri == "" {
		return ErrEmptyURI
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return errors.Join(ErrInvalidURI, fmt.Errorf("unsupported scheme in %q", redactURI(uri)))
	}
	if strings.TrimSpace(c.Database) == "" {
		return ErrEmptyDatabase
	}
	if c.RetryAttempts < 0 {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("retry attempts must be >= 0, got %d", c.RetryAttempts))
	}
	if c.MinPoolSize > c.MaxPoolSize && c.MaxPoolSize > 0 {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("min pool size %d exceeds max pool size %d", c.MinPoolSize, c.MaxPoolSize))
	}
	return nil
}

// redactURI strips user info so credentials never reach logs or error messages.
func redactURI(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return "<invalid>"
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = "***@" + rest[at+1:]
	}
	return scheme + "://" + rest
}
