// Package app assembles the HTTP routes of the service.
package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/cities/handler"
	"github.com/dmitrymomot/cities/pkg/httpserver"
	"github.com/dmitrymomot/cities/pkg/requestid"
)

// Mountable is a sub-router.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions lists what to mount. Nil resources are skipped.
type RouterOptions struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration

	Cities   Mountable
	Location Mountable

	Readiness []httpserver.CheckFunc
}

// Router builds the root router:
//
//	/health/live, /health/ready
//	/api/cities/...
//	/api/location/...
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		middleware.RealIP,
		httpserver.AccessLog(log),
		middleware.Recoverer,
	)

	r.Route("/health", func(h chi.Router) {
		h.Get("/live", httpserver.LivenessHandler())
		h.Get("/ready", httpserver.ReadinessHandler(log, opts.Readiness...))
	})

	r.Route("/api", func(api chi.Router) {
		if opts.RequestTimeout > 0 {
			api.Use(middleware.Timeout(opts.RequestTimeout))
		}
		if opts.Cities != nil {
			api.Mount("/cities", opts.Cities.Handle())
		}
		if opts.Location != nil {
			api.Mount("/location", opts.Location.Handle())
		}
	})

	notFound := handler.NewErrorHandler(log)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		notFound(handler.NewContext(w, req), handler.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		notFound(handler.NewContext(w, req), handler.ErrMethodNotAllowed)
	})

	return r
}
