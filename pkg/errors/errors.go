// Package errors provides structured error types for stackcensus.
//
// Errors carry a machine-readable [Code] so callers can tell recoverable
// per-manifest failures apart from the failures that abort a run:
//   - PARSE_FAILURE, CLASSIFICATION_MISS: recovered locally, logged, row skipped
//   - CLIENT_UNAVAILABLE, JOB_NOT_INITIALIZED: query collaborator misuse, fatal
//   - CONNECT_FAILURE, READ_FAILURE, WRITE_FAILURE: storage, fatal at end of pass
//
// # Usage
//
//	err := errors.New(errors.ErrCodeClientUnavailable, "query is empty")
//	if errors.Is(err, errors.ErrCodeClientUnavailable) {
//	    // Handle setup error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeReadFailure, origErr, "read %s", key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-manifest errors (recoverable)
	ErrCodeParseFailure       Code = "PARSE_FAILURE"
	ErrCodeClassificationMiss Code = "CLASSIFICATION_MISS"

	// Query collaborator errors
	ErrCodeClientUnavailable Code = "CLIENT_UNAVAILABLE"
	ErrCodeJobNotInitialized Code = "JOB_NOT_INITIALIZED"

	// Storage errors
	ErrCodeConnectFailure Code = "CONNECT_FAILURE"
	ErrCodeReadFailure    Code = "READ_FAILURE"
	ErrCodeWriteFailure   Code = "WRITE_FAILURE"

	// Input validation errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidKey    Code = "INVALID_KEY"

	// Registry errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether err should abort a run rather than skip a row.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeParseFailure, ErrCodeClassificationMiss:
		return false
	case "":
		return err != nil
	default:
		return true
	}
}
