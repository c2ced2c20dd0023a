// Package location exposes location verification over HTTP.
package location

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cities/handler"
	"github.com/dmitrymomot/cities/pkg/verify"
)

// Verifier obtains a location token. *verify.Client implements it.
type Verifier interface {
	Verify(ctx context.Context) (string, error)
}

type result struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// Resource serves POST /verify.
type Resource struct {
	verifier Verifier
	errors   handler.ErrorHandler[handler.Context]
}

// NewResource returns the HTTP surface for v.
func NewResource(v Verifier, log *slog.Logger) *Resource {
	return &Resource{verifier: v, errors: handler.NewErrorHandler(log)}
}

// Handle returns the router to be mounted at e.g. /api/location.
func (res *Resource) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/verify", handler.Wrap(res.verify,
		handler.WithErrorHandler[handler.Context, struct{}](res.errors),
	))
	return r
}

func (res *Resource) verify(ctx handler.Context, _ struct{}) handler.Response {
	token, err := res.verifier.Verify(ctx)
	switch {
	case errors.Is(err, verify.ErrNotVerified):
		return handler.JSON(result{Message: "Location is not verified."},
			handler.WithJSONStatus(http.StatusBadRequest))
	case errors.Is(err, verify.ErrUnavailable):
		return handler.JSON(result{Message: "Location verification is unavailable."},
			handler.WithJSONStatus(http.StatusServiceUnavailable))
	case err != nil:
		return handler.Error(err)
	}
	return handler.JSON(result{Success: true, Token: token}, handler.WithJSONStatus(http.StatusCreated))
}
