// Package apperror provides the error taxonomy shared by the data layer and
// the HTTP surface. Repositories and services return *Error values so callers
// can distinguish "empty" from "failed" and react per kind; handlers map kinds
// to HTTP statuses without leaking driver details to clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for programmatic handling.
type Kind int

const (
	// NotFound — a lookup missed.
	NotFound Kind = iota
	// Conflict — a uniqueness constraint was violated.
	Conflict
	// TransientIO — the storage engine failed; retry by re-invoking.
	TransientIO
	// InvalidInput — malformed or out-of-range arguments.
	InvalidInput
	// Unauthorized — failed authentication or an account not approved.
	Unauthorized
)

// Error carries a kind, a client-safe message, and the wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to TransientIO for anything
// that did not originate in this package.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return TransientIO
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// HTTPStatus maps a kind to the status returned to clients.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case InvalidInput:
		return http.StatusUnprocessableEntity
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusServiceUnavailable
	}
}

// Response is the canonical error envelope for all 4xx/5xx HTTP responses.
type Response struct {
	Detail string `json:"detail"`
}

// Detail builds the client-safe envelope. Internal causes are never included.
func Detail(err error) *Response {
	var ae *Error
	if errors.As(err, &ae) {
		return &Response{Detail: ae.Message}
	}
	return &Response{Detail: "internal error"}
}

// Validation wraps multiple field errors.
type ValidationResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationResponse {
	return &ValidationResponse{Detail: "validation failed", Fields: fields}
}
