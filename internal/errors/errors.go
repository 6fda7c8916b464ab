// Package errors provides structured errors shared by the counting library,
// the sweep validator and the HTTP API.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode classifies a StructuredError.
type ErrorCode string

const (
	// ErrCodeInvalidParameter indicates a rejected input value.
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimitExceeded indicates the client exceeded an enforced request limit.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an internal failure.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError carries an error code, a human readable message,
// the underlying cause and optional context for logging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap creates a new StructuredError wrapping an existing error.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// InvalidParameter reports a rejected field along with the reason.
func InvalidParameter(field, reason string) *StructuredError {
	return NewWithContext(ErrCodeInvalidParameter, reason, map[string]any{"field": field})
}

// CodeOf returns the code of the first StructuredError in err's chain,
// or ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// As is errors.As from the standard library, re-exported so callers importing
// this package under the name errors keep access to it.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
