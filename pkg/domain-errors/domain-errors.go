// Package domainerrors carries coded errors across the form, config and lookup layers
// without tying them to a transport or a UI.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies what went wrong in form terms.
type Code string

const (
	CodeValidation   Code = "validation_failed" // a submitted value is not in its final format
	CodeInvalidInput Code = "invalid_input"     // a caller passed something unusable
	CodeConfig       Code = "invalid_config"    // configuration could not be loaded or checked
	CodeNotFound     Code = "not_found"
	CodeInternal     Code = "internal_error"
)

// Error wraps a failure with a stable code and, for form errors, the offending field.
type Error struct {
	Code    Code
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Field != "":
		return e.Field + ": " + e.Message
	case e.Message != "":
		return e.Message
	default:
		return string(e.Code)
	}
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Newf is New with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ForField creates a validation error attached to a form field.
func ForField(field, msg string) error {
	return &Error{Code: CodeValidation, Field: field, Message: msg}
}

// Wrap creates a domain error around err.
// If err is already a domain error its code and field are kept.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Field: existing.Field, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether err is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// FieldOf returns the form field a domain error is attached to, if any.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
