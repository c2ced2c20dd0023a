package handler

import "net/http"

// HTTPError represents an HTTP error with a status code and a client-safe message.
type HTTPError struct {
	Code    int    // HTTP status code
	Message string // Message returned to the client
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Message: "Bad Request"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Message: "Not Found"}
	ErrMethodNotAllowed     = HTTPError{Code: http.StatusMethodNotAllowed, Message: "Method Not Allowed"}
	ErrRequestTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Message: "Request Entity Too Large"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Message: "Unsupported Media Type"}
	ErrUnprocessableEntity  = HTTPError{Code: http.StatusUnprocessableEntity, Message: "Validation failed"}
	ErrTooManyRequests      = HTTPError{Code: http.StatusTooManyRequests, Message: "Too Many Requests"}
	ErrInternalServerError  = HTTPError{Code: http.StatusInternalServerError, Message: "Server Error"}
	ErrServiceUnavailable   = HTTPError{Code: http.StatusServiceUnavailable, Message: "Service Unavailable"}
)

// NewHTTPError creates a custom HTTP error with the given status code and message.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}
