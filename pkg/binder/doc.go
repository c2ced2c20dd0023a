// Package binder turns parts of an *http.Request into typed request values.
//
// Each binder has the signature func(*http.Request, any) error and is plugged
// into handler.Wrap through handler.WithBinders. Errors wrap package sentinels
// (ErrFailedToParseJSON, ErrUnsupportedMediaType, ...) so the error handler can
// map them to 400 or 415 responses.
package binder
