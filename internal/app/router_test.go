package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/cities/internal/app"
	"github.com/dmitrymomot/cities/pkg/httpserver"
	"github.com/dmitrymomot/cities/pkg/requestid"
)

type mountFunc func() http.Handler

func (f mountFunc) Handle() http.Handler { return f() }

func echoPath() mountFunc {
	return func() http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.URL.Path))
		})
	}
}

func TestRouter(t *testing.T) {
	t.Parallel()

	r := app.Router(app.RouterOptions{
		Cities:    echoPath(),
		Readiness: []httpserver.CheckFunc{func(context.Context) error { return errors.New("down") }},
	})

	t.Run("cities mounted", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cities", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	})

	t.Run("location not mounted without verifier", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/location/verify", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"msg":"Not Found"}`, rec.Body.String())
	})

	t.Run("liveness", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness reports failing dependency", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("request id is propagated", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set(requestid.Header, "abc-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", rec.Header().Get(requestid.Header))
	})
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	r := app.Router(app.RouterOptions{Cities: mountFunc(func() http.Handler {
		return http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	})})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cities", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
