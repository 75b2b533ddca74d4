// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"errors"

	coreerrors "competitor-monitor-api/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if coreerrors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	var transportErr *coreerrors.TransportError
	if errors.As(err, &transportErr) {
		switch {
		case transportErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		case transportErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service")
		case transportErr.StatusCode >= 400:
			return huma.Error400BadRequest("External service request error", err)
		default:
			return huma.Error502BadGateway("External service unreachable", err)
		}
	}

	// Default to internal server error for unknown errors
	return huma.Error500InternalServerError("Internal server error", err)
}
