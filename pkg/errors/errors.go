// Package errors provides structured error types for ekistations.
//
// Error codes let the CLI and the invocation handler tell a fatal transport
// failure apart from a bad configuration or a failed save, without string
// matching on messages.
//
// # Error Codes
//
//   - INVALID_*: configuration and input validation failures
//   - TRANSPORT_ERROR: a request to the upstream API could not complete
//   - MALFORMED_RESPONSE: an upstream body could not be parsed
//   - SAVE_FAILED: the output file could not be written
//   - INTERNAL_ERROR: anything unexpected
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeTransport, cause, "fetch lines")
//	if errors.Is(err, errors.ErrCodeTransport) {
//	    // report failure, nothing was saved
//	}
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Upstream errors
	ErrCodeTransport Code = "TRANSPORT_ERROR"
	ErrCodeMalformed Code = "MALFORMED_RESPONSE"

	// Output errors
	ErrCodeSave Code = "SAVE_FAILED"

	// Internal errors
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

// Is reports whether any *Error in err's chain carries code, so a save
// failure wrapped by the handler still matches ErrCodeSave.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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

// UserMessage returns a user-friendly message for the error.
// For *Error types this is the message plus the cause, without the code
// prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
