package handler

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the body of message-only responses, such as confirmations and errors.
type MessageBody struct {
	Msg    string              `json:"msg"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	payload, err := json.Marshal(j.body)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(payload, '\n'))
	return err
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON renders v as the response body, 200 by default.
// The value is marshaled before any header is written, so a marshal
// failure still reaches the error handler with a clean response writer.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Message renders {"msg": msg} with the given status.
func Message(status int, msg string) Response {
	return jsonResponse{status: status, body: MessageBody{Msg: msg}}
}

// errorResponse defers to the ErrorHandler configured in Wrap.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	if e.err == nil {
		return ErrNilResponse
	}
	return e.err
}

// Error returns a Response that hands err to the error handler instead of
// writing anything itself. Use it to keep status mapping and logging in one place.
func Error(err error) Response {
	return errorResponse{err: err}
}
