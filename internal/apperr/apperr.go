// Package apperr defines the failure kinds request handlers report to the
// central error responder.
package apperr

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrBadRequest   = errors.New("bad request")
)

// Error pairs a kind (one of the sentinels above) with a client-facing
// message, optional per-field details and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Details map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Unauthorized(cause error) error {
	return &Error{Kind: ErrUnauthorized, Message: "unauthorized", Cause: cause}
}

func Forbidden() error {
	return &Error{Kind: ErrForbidden, Message: "forbidden"}
}

func Invalid(details map[string]string, cause error) error {
	return &Error{Kind: ErrInvalid, Message: "validation error", Details: details, Cause: cause}
}

func Conflict(message string, cause error) error {
	return &Error{Kind: ErrConflict, Message: message, Cause: cause}
}

func BadRequest(message string, cause error) error {
	return &Error{Kind: ErrBadRequest, Message: message, Cause: cause}
}
