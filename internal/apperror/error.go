// Package apperror defines the error taxonomy shared by the hypergraph store.
//
// Every failure surfaced by the entity model, the repository facades and the
// dual synthesizer is an *Error carrying a Kind. Callers branch on the kind
// with errors.Is against the sentinel values below:
//
//	if errors.Is(err, apperror.ErrNotFound) { ... }
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an Error
type Kind string

const (
	KindValidation      Kind = "validation_error"
	KindSerialization   Kind = "serialization_error"
	KindDeserialization Kind = "deserialization_error"
	KindStorage         Kind = "storage_error"
	KindStorageOpen     Kind = "storage_open_error"
	KindNotFound        Kind = "not_found"
)

// Error is an application error with a kind, the key it concerns (if any)
// and an optional underlying cause
type Error struct {
	Kind     Kind
	Message  string
	Key      string
	Internal error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key %q)", msg, e.Key)
	}
	if e.Internal != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Internal)
	}
	return msg
}

// Unwrap returns the internal error
func (e *Error) Unwrap() error {
	return e.Internal
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithInternal returns a copy of the error with an internal error attached
func (e *Error) WithInternal(err error) *Error {
	return &Error{
		Kind:     e.Kind,
		Message:  e.Message,
		Key:      e.Key,
		Internal: err,
	}
}

// WithKey returns a copy of the error bound to a record key
func (e *Error) WithKey(key string) *Error {
	return &Error{
		Kind:     e.Kind,
		Message:  e.Message,
		Key:      key,
		Internal: e.Internal,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Kind:     e.Kind,
		Message:  message,
		Key:      e.Key,
		Internal: e.Internal,
	}
}

// New creates a new application error
func New(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// Sentinel errors, one per kind
var (
	ErrValidation      = New(KindValidation, "validation failed")
	ErrSerialization   = New(KindSerialization, "failed to encode record")
	ErrDeserialization = New(KindDeserialization, "failed to decode record")
	ErrStorage         = New(KindStorage, "storage operation failed")
	ErrStorageOpen     = New(KindStorageOpen, "failed to open storage")
	ErrNotFound        = New(KindNotFound, "record not found")
)

// Validationf builds a validation error with a formatted message
func Validationf(format string, args ...any) *Error {
	return ErrValidation.WithMessage(fmt.Sprintf(format, args...))
}

// NotFound builds a not-found error for key
func NotFound(key string) *Error {
	return ErrNotFound.WithKey(key)
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
