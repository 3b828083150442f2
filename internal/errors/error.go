package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryReconcile Category = "reconcile"
	CategoryState     Category = "state"
	CategoryCanvas    Category = "canvas"
	CategoryConfig    Category = "config"
	CategoryProtocol  Category = "protocol"
	CategoryCLI       Category = "cli"
)

// RetainError is a structured error with a registered code and a fix hint.
type RetainError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type (reconcile, state, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RetainError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RetainError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same registered code.
func (e *RetainError) Is(target error) bool {
	t, ok := target.(*RetainError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RetainError) WithSuggestion(s string) *RetainError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the detailed explanation of the error.
func (e *RetainError) WithDetail(d string) *RetainError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with formatting.
func (e *RetainError) WithDetailf(format string, args ...any) *RetainError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *RetainError) Wrap(err error) *RetainError {
	e.Wrapped = err
	return e
}

// New creates a RetainError from a registered error code.
func New(code string) *RetainError {
	template, ok := registry[code]
	if !ok {
		return &RetainError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RetainError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new RetainError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RetainError {
	return &RetainError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RetainError.
func FromError(err error, code string) *RetainError {
	if err == nil {
		return nil
	}
	var re *RetainError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err, or any error it wraps, is a RetainError with code.
func HasCode(err error, code string) bool {
	var re *RetainError
	for err != nil {
		if !stderrors.As(err, &re) {
			return false
		}
		if re.Code == code {
			return true
		}
		err = re.Wrapped
	}
	return false
}
