// ABOUTME: Error types for the Competitor Monitor client
// ABOUTME: Structured errors whose messages are shown to end users as-is

package client

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork indicates the server could not be reached
	ErrorTypeNetwork ErrorType = "network"

	// ErrorTypeTimeout indicates the server did not answer in time
	ErrorTypeTimeout ErrorType = "timeout"

	// ErrorTypeHTTP indicates the server answered with an error status
	ErrorTypeHTTP ErrorType = "http"

	// ErrorTypeValidation indicates bad input caught before any request
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeInternal indicates an unexpected failure such as a bad body
	ErrorTypeInternal ErrorType = "internal"
)

// User-facing messages
const (
	MessageConnection   = "could not connect to the server, make sure the backend is running"
	MessageTimeout      = "timed out waiting for a response from the server"
	MessageFileNotFound = "file not found"
)

// Error represents a structured error from the client
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// IsNetworkError checks if an error is a network error
func IsNetworkError(err error) bool {
	return hasType(err, ErrorTypeNetwork)
}

// IsTimeoutError checks if an error is a timeout
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// IsHTTPError checks if an error carries an error status from the server
func IsHTTPError(err error) bool {
	return hasType(err, ErrorTypeHTTP)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// UserMessage returns the message to show for err
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
