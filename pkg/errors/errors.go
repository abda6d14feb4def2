// Package errors provides structured error types for pydepviz.
//
// Error codes give every fatal failure a stable, machine-readable identity
// while keeping the message readable for humans. Codes map onto the three
// failure categories of the tool: configuration errors (reported before the
// pipeline runs), per-file parse errors (recovered, never fatal), and
// rendering errors (reported before any partial output is written).
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidEngine, "unknown engine %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidEngine) {
//	    // handle
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes grouped by failure category.
const (
	// Configuration errors (fatal before the pipeline runs)
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidEngine    Code = "INVALID_ENGINE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Extraction errors (per-file ones are recovered; these are setup failures)
	ErrCodeScan  Code = "SCAN_ERROR"
	ErrCodeParse Code = "PARSE_ERROR"

	// Rendering errors (fatal after build, before output is committed)
	ErrCodeRender Code = "RENDER_ERROR"

	// Unexpected internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error. For *Error
// types the code prefixes are stripped but the cause chain is kept, so
// "walk /proj: open /proj/a.py: permission denied" survives intact.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
