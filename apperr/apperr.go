// Package apperr defines the error taxonomy shared by every service:
// callers classify returned errors with errors.Is against the base errors
// below, the HTTP layer maps them to a status code with Status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Base errors. Service errors wrap exactly one of these.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("insufficient permissions")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource already exists")
	ErrUnauthorized = errors.New("invalid credentials")
)

// wrapped formats as its own message but unwraps as one of the base errors,
// so generic messages never leak into user-facing text.
type wrapped struct {
	msg string
	err error
}

func (w wrapped) Error() string { return w.msg }
func (w wrapped) Unwrap() error { return w.err }

func wrapf(base error, format string, args ...any) error {
	if len(args) == 0 {
		return wrapped{msg: format, err: base}
	}
	return wrapped{msg: fmt.Sprintf(format, args...), err: base}
}

func NotFoundf(format string, args ...any) error {
	return wrapf(ErrNotFound, format, args...)
}

func Forbiddenf(format string, args ...any) error {
	return wrapf(ErrForbidden, format, args...)
}

func BadRequestf(format string, args ...any) error {
	return wrapf(ErrBadRequest, format, args...)
}

func Conflictf(format string, args ...any) error {
	return wrapf(ErrConflict, format, args...)
}

func Unauthorizedf(format string, args ...any) error {
	return wrapf(ErrUnauthorized, format, args...)
}

// Status returns the HTTP status code for err. Unclassified errors are
// internal: they are surfaced, never swallowed, but their text is not
// trusted for clients.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err, hiding internals.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
