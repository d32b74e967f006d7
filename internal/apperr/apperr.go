// Package apperr defines the typed error outcomes shared by services and
// handlers. Each error carries a stable machine-readable code; handlers map
// codes to HTTP statuses without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error category.
type Code string

const (
	// Unauthenticated means the credential is missing, invalid, expired,
	// or resolves to a nonexistent identity.
	Unauthenticated Code = "unauthenticated"
	// Forbidden means the caller is authenticated but not authorized for
	// the target resource.
	Forbidden Code = "forbidden"
	// NotFound means the resource or identity does not exist.
	NotFound Code = "not_found"
	// Conflict means a business-rule violation such as a duplicate
	// recommendation or an already-registered email.
	Conflict Code = "conflict"
	// ValidationFailed means a mutation payload is malformed.
	ValidationFailed Code = "validation_failed"
	// Unavailable means the store or another collaborator is unreachable
	// or timed out.
	Unavailable Code = "service_unavailable"
	// Internal covers anything unclassified.
	Internal Code = "internal"
)

// Error is a typed outcome with a category and a human-readable message.
type Error struct {
	// Code is the stable category for this error.
	Code Code
	// Message is safe to show to API clients.
	Message string
	// Fields holds field-level detail for validation failures.
	Fields []string
	// Err is the wrapped cause, if any. It is logged, never exposed.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap constructs an Error that wraps an underlying cause.
func Wrap(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Validation constructs a ValidationFailed error with field-level details.
func Validation(message string, fields ...string) *Error {
	return &Error{Code: ValidationFailed, Message: message, Fields: fields}
}

// CodeOf extracts the Code from err. Errors that are not *Error are
// classified as Internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}

// MessageOf returns the client-safe message for err. Unclassified errors
// yield a generic message so internal detail never leaks.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// FieldsOf returns the field-level details for err, if any.
func FieldsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Fields
	}
	return nil
}
