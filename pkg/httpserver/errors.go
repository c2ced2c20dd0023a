package httpserver

import "errors"

var (
	// ErrStart indicates that the server could not listen or serve.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown or a stop hook failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
