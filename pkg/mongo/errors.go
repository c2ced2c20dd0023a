package mongo

import "errors"

var (
	// ErrConnection is returned by Cache.Get when the shared connection could not be
	// established. It is never cached: the next call starts a fresh attempt.
	ErrConnection = errors.New("mongo connection unavailable")

	// ErrCacheClosed is returned by Cache.Get once Close has been called.
	ErrCacheClosed = errors.New("mongo connection cache closed")

	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrEmptyURI               = errors.New("empty mongo connection uri, use MONGODB_URI env var")
	ErrEmptyDatabase          = errors.New("empty mongo database name, use MONGODB_DB env var")
	ErrInvalidURI             = errors.New("invalid mongo connection uri")
	ErrInvalidConfig          = errors.New("invalid mongo config")
)
