package errors

import (
	"fmt"
)

// Category represents the type of error. The Layout core only ever raises
// runtime errors (there's no compile step, hydration, or wire protocol in
// this package's scope), so that's the only category registered.
type Category string

const (
	CategoryRuntime Category = "runtime"
)

// VangoError is a structured error with a stable code, message, detail, and
// an optional fix suggestion and doc link.
type VangoError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VangoError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VangoError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VangoError) WithSuggestion(s string) *VangoError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *VangoError) WithDetail(d string) *VangoError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *VangoError) Wrap(err error) *VangoError {
	e.Wrapped = err
	return e
}

// New creates a VangoError from a registered error code.
func New(code string) *VangoError {
	template, ok := registry[code]
	if !ok {
		return &VangoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VangoError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new VangoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VangoError {
	return &VangoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VangoError.
func FromError(err error, code string) *VangoError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VangoError); ok {
		return ve
	}
	return New(code).Wrap(err)
}
