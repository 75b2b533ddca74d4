// ABOUTME: Configuration options for the Competitor Monitor client
// ABOUTME: Functional options over the base URL, timeout and transport

package client

import (
	"strings"
	"time"

	"competitor-monitor-api/core/interfaces"
)

// Defaults
const (
	DefaultBaseURL = "http://localhost:8000"
	// Site analysis runs a browser and a vision call
	DefaultTimeout = 2 * time.Minute
)

// Config holds the configuration for the client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient interfaces.HTTPClient
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// WithBaseURL sets the server address
func WithBaseURL(baseURL string) Option {
	return func(c *Config) error {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL == "" {
			return NewError(ErrorTypeValidation, "base URL must not be empty")
		}
		c.BaseURL = baseURL
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default transport
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) error {
		if timeout <= 0 {
			return NewError(ErrorTypeValidation, "timeout must be positive")
		}
		c.Timeout = timeout
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client; WithTimeout no longer applies
func WithHTTPClient(client interfaces.HTTPClient) Option {
	return func(c *Config) error {
		c.HTTPClient = client
		return nil
	}
}

func defaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}
