// Package errors provides structured error types for relgraph.
//
// Error codes let the CLI and library callers tell input mistakes apart from
// structural failures of the relationship graph:
//   - INVALID_*: malformed catalogs, references, names or paths
//   - *_NOT_FOUND: missing files or resources
//   - DEPENDENCY_CYCLE: the declared relationships admit no execution order
//   - INTERNAL_*: unexpected failures (rendering, cache backends)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidReference, "malformed reference %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidReference) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors; the cause's message is kept verbatim.
//	err := errors.Wrap(errors.ErrCodeDependencyCycle, cycleErr, "cannot schedule %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidReference Code = "INVALID_REFERENCE"
	ErrCodeInvalidName      Code = "INVALID_NAME"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidCatalog   Code = "INVALID_CATALOG"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Lookup errors
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodeResourceNotFound Code = "RESOURCE_NOT_FOUND"

	// Structural errors
	ErrCodeDependencyCycle Code = "DEPENDENCY_CYCLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
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

// UserMessage returns the message an operator should see. Structural errors
// carry their cause verbatim, since a cycle report is what needs fixing;
// other *Error values drop the code prefix.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause != nil && e.Code == ErrCodeDependencyCycle {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
