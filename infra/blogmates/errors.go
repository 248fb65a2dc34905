package blogmates

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RequestError is a normalized non-2xx backend response. Message carries the
// backend-supplied error text when the body had one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// newRequestError extracts the optional {error} or {message} field from an
// error body.
func newRequestError(status int, body []byte) *RequestError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = payload.Detail
	}
	return &RequestError{Status: status, Message: msg}
}

// UserMessage returns the backend-supplied message verbatim when present,
// else the fallback. Views use it to decide presentation.
func UserMessage(err error, fallback string) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}
