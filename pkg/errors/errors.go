package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed client error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// FallbackMessage is shown whenever the backend gives us nothing usable.
const FallbackMessage = "request failed, please try again"

// Predefined errors for common scenarios.
var (
	ErrSessionExpired    = New("SESSION_EXPIRED", http.StatusUnauthorized, "session expired, please log in again")
	ErrForbidden         = New("FORBIDDEN", http.StatusForbidden, "you do not have access to this resource")
	ErrNotFound          = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict          = New("CONFLICT", http.StatusConflict, "already registered")
	ErrValidation        = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrTransport         = New("TRANSPORT_ERROR", 0, FallbackMessage)
	ErrMutationInFlight  = New("MUTATION_IN_FLIGHT", 0, "action already in progress")
	ErrLookupUnavailable = New("LOOKUP_UNAVAILABLE", 0, "location lookup unavailable")
	ErrInternal          = New("INTERNAL_ERROR", http.StatusInternalServerError, "something went wrong")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// envelope mirrors the backend error body. The message can live at either
// the top level or nested under "error" depending on the endpoint.
type envelope struct {
	Message string `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FromResponse maps a non-2xx backend response to a typed *Error. The
// human-readable message comes from the response body when present, else the
// static fallback. 401 and 409 get their documented dedicated mappings.
func FromResponse(status int, body []byte) *Error {
	message := extractMessage(body)

	switch status {
	case http.StatusUnauthorized:
		return Clone(ErrSessionExpired, "")
	case http.StatusConflict:
		return Clone(ErrConflict, message)
	case http.StatusForbidden:
		return Clone(ErrForbidden, message)
	case http.StatusNotFound:
		return Clone(ErrNotFound, message)
	}

	if message == "" {
		message = FallbackMessage
	}
	return New("HTTP_ERROR", status, message)
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}
	return env.Message
}
