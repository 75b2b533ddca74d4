// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates validation, model transport and browser failures for the pipeline

package errors

import (
	"context"
	"errors"
	"fmt"
)

// ErrNavigationTimeout is returned by browser engines when a page does not
// finish loading (or its body never appears) within the page-load timeout
var ErrNavigationTimeout = errors.New("navigation timed out")

// ValidationError represents bad input rejected before any external call
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// TransportError represents a failed call to the model endpoint
type TransportError struct {
	API        string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error: %d - %s", e.API, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.API, e.Message)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// BrowserError represents a failure reported by the browser engine itself,
// as opposed to a bug or unexpected condition in the caller
type BrowserError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *BrowserError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("browser %s failed", e.Op)
	}
	return fmt.Sprintf("browser %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *BrowserError) Unwrap() error {
	return e.Err
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsBrowser checks if an error is a BrowserError
func IsBrowser(err error) bool {
	var browserErr *BrowserError
	return errors.As(err, &browserErr)
}

// IsTimeout checks if an error is a navigation timeout or a context deadline
func IsTimeout(err error) bool {
	return errors.Is(err, ErrNavigationTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
