// Package handler provides type-safe HTTP handlers built on generics.
//
// A HandlerFunc receives a Context and a typed request value populated by
// binders, and returns a Response. Wrap adapts it to http.HandlerFunc and
// routes binding and rendering failures to a single ErrorHandler.
//
// Handlers return Error(err) for failures; NewErrorHandler classifies the
// error (custom Classifier functions first, then validation, binder and
// HTTPError values) into a status code and a {"msg": ...} JSON body, and logs
// the underlying error server-side.
//
//	eh := handler.NewErrorHandler(log, city.ClassifyError)
//	r.Get("/", handler.Wrap(list, handler.WithErrorHandler[handler.Context, struct{}](eh)))
package handler
