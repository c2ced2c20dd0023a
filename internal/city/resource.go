package city

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/cities/handler"
	"github.com/dmitrymomot/cities/pkg/binder"
)

// NotFoundMessage is the body message for unknown ids.
const NotFoundMessage = "No city with that ID found"

// ClassifyError maps city errors to responses. Storage failures stay opaque.
func ClassifyError(err error) (handler.ErrorInfo, bool) {
	switch {
	case errors.Is(err, ErrNotFound):
		return handler.ErrorInfo{StatusCode: http.StatusNotFound, Message: NotFoundMessage}, true
	case errors.Is(err, ErrStorage):
		return handler.ErrorInfo{
			StatusCode: handler.ErrInternalServerError.Code,
			Message:    handler.ErrInternalServerError.Message,
		}, true
	}
	return handler.ErrorInfo{}, false
}

// ResourceOption configures a Resource.
type ResourceOption func(*Resource)

// WithWriteMiddleware adds middleware applied to the create and delete routes only.
func WithWriteMiddleware(mw ...func(http.Handler) http.Handler) ResourceOption {
	return func(r *Resource) {
		r.writeMW = append(r.writeMW, mw...)
	}
}

// Resource exposes the city operations over HTTP.
type Resource struct {
	svc     *Service
	errors  handler.ErrorHandler[handler.Context]
	writeMW []func(http.Handler) http.Handler
}

// NewResource returns the HTTP surface for svc.
func NewResource(svc *Service, log *slog.Logger, opts ...ResourceOption) *Resource {
	r := &Resource{
		svc:    svc,
		errors: handler.NewErrorHandler(log, ClassifyError),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type removeRequest struct {
	ID string `path:"id"`
}

// Handle returns the router to be mounted at the collection path, e.g. /api/cities.
//
//	GET    /             list
//	POST   /             create
//	DELETE /remove/{id}  delete
//	DELETE /{id}         delete
func (res *Resource) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(res.list,
		handler.WithErrorHandler[handler.Context, struct{}](res.errors),
	))

	r.Group(func(w chi.Router) {
		w.Use(res.writeMW...)

		w.Post("/", handler.Wrap(res.create,
			handler.WithBinders[handler.Context, CreateInput](binder.JSON()),
			handler.WithErrorHandler[handler.Context, CreateInput](res.errors),
		))

		remove := handler.Wrap(res.remove,
			handler.WithBinders[handler.Context, removeRequest](binder.Path(chi.URLParam)),
			handler.WithErrorHandler[handler.Context, removeRequest](res.errors),
		)
		w.Delete("/remove/{id}", remove)
		w.Delete("/{id}", remove)
	})

	return r
}

func (res *Resource) list(ctx handler.Context, _ struct{}) handler.Response {
	cities, err := res.svc.List(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(cities)
}

func (res *Resource) create(ctx handler.Context, in CreateInput) handler.Response {
	c, err := res.svc.Create(ctx, in)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(c, handler.WithJSONStatus(http.StatusCreated))
}

func (res *Resource) remove(ctx handler.Context, req removeRequest) handler.Response {
	c, err := res.svc.Delete(ctx, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Message(http.StatusOK, fmt.Sprintf("City (%s) removed", c.City))
}
