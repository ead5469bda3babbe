// Cinecatalog - Movie Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecatalog

package catalog

import (
	"errors"
	"fmt"

	"github.com/tomtom215/cinecatalog/internal/validation"
)

// Sentinel errors. Every *Error matches exactly one of them with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConflict         = errors.New("conflict")
	ErrMalformedInput   = errors.New("malformed input")
)

// Kind classifies a catalog error.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindInvalidOperation
	KindConflict
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindInvalidOperation:
		return "invalid_operation"
	case KindConflict:
		return "conflict"
	case KindMalformedInput:
		return "malformed_input"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindInvalidOperation:
		return ErrInvalidOperation
	case KindConflict:
		return ErrConflict
	case KindMalformedInput:
		return ErrMalformedInput
	default:
		return nil
	}
}

// Error is a client-facing catalog failure. Message is safe to return to
// callers verbatim. Fields is set only for KindValidation and maps JSON field
// names to messages.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

// InvalidOperation builds a KindInvalidOperation error.
func InvalidOperation(format string, args ...interface{}) *Error {
	return newError(KindInvalidOperation, format, args...)
}

// Conflict builds a KindConflict error wrapping the storage cause.
func Conflict(cause error, message string) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

// MalformedInput builds a KindMalformedInput error.
func MalformedInput(cause error, format string, args ...interface{}) *Error {
	e := newError(KindMalformedInput, format, args...)
	e.Err = cause
	return e
}

// InvalidParameter reports a query or path value that could not be parsed.
func InvalidParameter(name, value string, cause error) *Error {
	return MalformedInput(cause, "Invalid value '%s' for parameter '%s'", value, name)
}

// MissingParameter reports a required query parameter that is absent or blank.
func MissingParameter(name string) *Error {
	return InvalidOperation("Required parameter '%s' is missing", name)
}

// fromValidation converts a validator failure into a KindValidation error.
func fromValidation(ve *validation.RequestValidationError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: ve.Error(),
		Fields:  ve.FieldMessages(),
		Err:     ve,
	}
}

// KindOf returns the Kind of err, or 0 for errors outside the taxonomy.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
