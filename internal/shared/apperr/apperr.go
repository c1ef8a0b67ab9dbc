// Package apperr defines the error taxonomy shared by every bounded context.
// Application services translate domain sentinels into these kinds; the HTTP
// layer maps each kind to a status code in exactly one place.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping.
type Kind int

const (
	// KindUnknown is the zero value; surfaces as an internal error.
	KindUnknown Kind = iota
	// KindNotFound signals a referenced entity does not exist.
	KindNotFound
	// KindInvalidState signals a transition not permitted from the current status.
	KindInvalidState
	// KindUnauthorized signals the actor lacks ownership or role for the action.
	KindUnauthorized
	// KindConflict signals duplicate pending requests or insufficient stock.
	KindConflict
	// KindExternal signals a payment, image, or AI provider failure.
	KindExternal
	// KindInvalidInput signals a malformed or invariant-violating request.
	KindInvalidInput
)

// Error carries a kind plus a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause while keeping the client-facing message.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) *Error { return New(KindNotFound, format, args...) }

// InvalidState builds a KindInvalidState error.
func InvalidState(format string, args ...any) *Error { return New(KindInvalidState, format, args...) }

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(format string, args ...any) *Error { return New(KindUnauthorized, format, args...) }

// Conflict builds a KindConflict error.
func Conflict(format string, args ...any) *Error { return New(KindConflict, format, args...) }

// External builds a KindExternal error wrapping the provider failure.
func External(cause error, format string, args ...any) *Error {
	return Wrap(KindExternal, cause, format, args...)
}

// InvalidInput builds a KindInvalidInput error.
func InvalidInput(format string, args ...any) *Error { return New(KindInvalidInput, format, args...) }

// KindOf extracts the kind from an error chain, KindUnknown when absent.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-facing message, or the raw error text for
// unclassified errors.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
