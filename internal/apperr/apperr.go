// Package apperr defines the error taxonomy shared by the data layer and the
// HTTP boundary: validation failures, authentication failures, database
// failures, and assignment conflicts. Handlers map each kind to a status code
// and a short client-safe message; the underlying cause is logged server-side
// only.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// KindValidation covers missing or malformed input, including
	// identifiers rejected before query construction. Maps to 400.
	KindValidation Kind = iota
	// KindAuth covers bad credentials. Maps to 401.
	KindAuth
	// KindQuery covers any database failure, including constraint
	// violations and unknown tables or columns. Maps to 500.
	KindQuery
	// KindConflict covers a stem cell that is not available for
	// assignment. Maps to 409.
	KindConflict
)

// Error carries a kind, a client-safe message, and an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation returns a KindValidation error.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Auth returns a KindAuth error.
func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Msg: msg}
}

// Query wraps a database failure.
func Query(msg string, err error) *Error {
	return &Error{Kind: KindQuery, Msg: msg, Err: err}
}

// Conflict returns a KindConflict error.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// KindOf reports the kind of err. Errors outside the taxonomy are treated as
// query failures, which keeps unexpected database errors at 500.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindQuery
}

// HTTPStatus maps err to the response status for the HTTP boundary.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-safe message for err. Wrapped causes are never
// included.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "internal error"
}
