package helpers

import (
	"fmt"
	"strings"
)

// ParseError is returned when a value fails every layout a helper accepts
type ParseError struct {
	Helper  string
	Value   string
	Layouts []string
	Cause   error
}

func (e *ParseError) Error() string {
	if len(e.Layouts) > 0 {
		return fmt.Sprintf("%s: cannot parse %q (tried %s)", e.Helper, e.Value, strings.Join(e.Layouts, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: cannot parse %q: %v", e.Helper, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: cannot parse %q", e.Helper, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// MissingFieldError is returned when a structured value lacks a required field
type MissingFieldError struct {
	Helper string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Helper, e.Field)
}

// ComparisonTypeError is returned when two operands cannot be ordered
type ComparisonTypeError struct {
	Helper string
	Left   interface{}
	Right  interface{}
	Cause  error
}

func (e *ComparisonTypeError) Error() string {
	msg := fmt.Sprintf("%s: cannot compare %T with %T", e.Helper, e.Left, e.Right)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ComparisonTypeError) Unwrap() error {
	return e.Cause
}

// ArgumentError is returned when a positional parameter has the wrong type or range.
// Index -1 refers to the context value.
type ArgumentError struct {
	Helper string
	Index  int
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: invalid context: %s", e.Helper, e.Reason)
	}
	return fmt.Sprintf("%s: invalid parameter %d: %s", e.Helper, e.Index, e.Reason)
}
