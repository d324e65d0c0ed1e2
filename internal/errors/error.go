package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryDeclaration Category = "declaration"
	CategoryLookup      Category = "lookup"
	CategoryChain       Category = "chain"
	CategoryWrite       Category = "write"
	CategoryLifecycle   Category = "lifecycle"
	CategoryConfig      Category = "config"
	CategoryCLI         Category = "cli"
)

// TrackError is a structured error with a catalogue code and a fix hint.
type TrackError struct {
	// Code is a unique error identifier (e.g., "VT001").
	Code string

	// Category is the error type.
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
func (e *TrackError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TrackError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TrackError) WithSuggestion(s string) *TrackError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *TrackError) WithDetail(d string) *TrackError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *TrackError) Wrap(err error) *TrackError {
	e.Wrapped = err
	return e
}

// New creates a TrackError from a registered error code.
func New(code string) *TrackError {
	template, ok := registry[code]
	if !ok {
		return &TrackError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TrackError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new TrackError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *TrackError {
	return &TrackError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// coder is implemented by errors that belong to the catalogue.
type coder interface {
	error
	Code() string
}

// FromError converts err into a TrackError. Errors in err's chain that expose
// a Code() method pick up their catalogue entry, with err's own message as
// the detail. Anything else is filed under fallback.
func FromError(err error, fallback string) *TrackError {
	if err == nil {
		return nil
	}
	var te *TrackError
	if stderrors.As(err, &te) {
		return te
	}
	var c coder
	if stderrors.As(err, &c) {
		return New(c.Code()).WithDetail(err.Error()).Wrap(err)
	}
	return New(fallback).WithDetail(err.Error()).Wrap(err)
}
