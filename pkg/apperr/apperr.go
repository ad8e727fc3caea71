// Package apperr defines the error kinds every domain error belongs to.
// Domain packages declare their sentinels with the constructors below, so
// callers can match either the specific error or its kind with errors.Is:
//
//	var ErrTagAlreadyExists = apperr.Conflict("tag with this name already exists")
//
//	errors.Is(err, ErrTagAlreadyExists) // specific
//	errors.Is(err, apperr.ErrConflict)  // kind
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. pkg/errhttp maps each kind to an HTTP status code.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error is a domain error with a client-facing message and a kind.
// Fields optionally carries per-field messages for validation failures.
type Error struct {
	kind    error
	message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.message }

// Unwrap exposes the kind so errors.Is(err, apperr.ErrConflict) matches.
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the kind sentinel of the error.
func (e *Error) Kind() error { return e.kind }

// Validation returns a validation error (HTTP 400).
func Validation(format string, args ...any) *Error {
	return newError(ErrValidation, format, args...)
}

// Conflict returns a duplicate/unique-key error (HTTP 409).
func Conflict(format string, args ...any) *Error {
	return newError(ErrConflict, format, args...)
}

// NotFound returns a missing-record error (HTTP 404).
func NotFound(format string, args ...any) *Error {
	return newError(ErrNotFound, format, args...)
}

// Unauthorized returns an authentication error (HTTP 401).
func Unauthorized(format string, args ...any) *Error {
	return newError(ErrUnauthorized, format, args...)
}

// Forbidden returns an authorization error (HTTP 403).
func Forbidden(format string, args ...any) *Error {
	return newError(ErrForbidden, format, args...)
}

// InvalidFields returns a validation error listing every failing field.
func InvalidFields(message string, fields map[string]string) *Error {
	e := newError(ErrValidation, "%s", message)
	e.Fields = fields
	return e
}

func newError(kind error, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{kind: kind, message: msg}
}

// As returns the outermost *Error in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
