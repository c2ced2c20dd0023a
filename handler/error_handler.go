package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cities/pkg/binder"
	"github.com/dmitrymomot/cities/pkg/logger"
	"github.com/dmitrymomot/cities/pkg/validator"
)

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Details    map[string][]string
}

// Classifier maps an error to a response. It reports false for errors it does
// not recognise so the next classifier can try.
type Classifier func(err error) (ErrorInfo, bool)

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if statusCode < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// classifyError checks custom classifiers first, then the errors every route can produce.
// Anything unrecognised becomes an opaque 500.
func classifyError(err error, classifiers []Classifier) ErrorInfo {
	for _, classify := range classifiers {
		if info, ok := classify(err); ok {
			return info
		}
	}

	if errs := validator.ExtractValidationErrors(err); errs != nil {
		return ErrorInfo{
			StatusCode: http.StatusUnprocessableEntity,
			Message:    ErrUnprocessableEntity.Message,
			Details:    errs.Map(),
		}
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return ErrorInfo{StatusCode: httpErr.Code, Message: httpErr.Message}
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrorInfo{StatusCode: ErrUnsupportedMediaType.Code, Message: ErrUnsupportedMediaType.Message}
	case errors.Is(err, binder.ErrRequestTooLarge):
		return ErrorInfo{StatusCode: ErrRequestTooLarge.Code, Message: ErrRequestTooLarge.Message}
	case errors.Is(err, binder.ErrFailedToParseJSON), errors.Is(err, binder.ErrFailedToParsePath):
		return ErrorInfo{StatusCode: ErrBadRequest.Code, Message: ErrBadRequest.Message}
	}

	return ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Message:    ErrInternalServerError.Message,
	}
}

// NewErrorHandler creates the JSON error handler shared by all routes.
//
// The response body is {"msg": ..., "errors": {...}} built from the
// classification only; the original error is logged with the request method,
// path and id but never written to the client.
func NewErrorHandler(log *slog.Logger, classifiers ...Classifier) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err, classifiers)
		r := ctx.Request()

		// A client that went away gets no log noise at error level.
		level := determineLogLevel(info.StatusCode)
		if errors.Is(err, context.Canceled) {
			level = slog.LevelInfo
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := jsonResponse{
			status: info.StatusCode,
			body:   MessageBody{Msg: info.Message, Errors: info.Details},
		}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Event("render_error_response"),
			)
		}
	}
}
