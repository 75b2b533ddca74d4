// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the shared infrastructure handed to the fetcher and browser engines

package interfaces

// Dependencies holds the shared external dependencies of the core services
type Dependencies struct {
	// Cache stores successfully fetched pages; nil disables page caching
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
