// Package api provides the HTTP API layer for the Competitor Monitor service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for requests and responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Key Features
//
// 1. Automatic OpenAPI Generation
//
// The API automatically generates OpenAPI 3.0 documentation:
// - OpenAPI document available at /openapi.json
// - Interactive Swagger UI at /docs
//
// 2. Request/Response Validation
//
// Huma validates bodies based on struct tags, so a text shorter than ten
// characters is rejected with 422 before the pipeline runs:
//
//	type TextAnalysisRequest struct {
//	    Text string `json:"text" minLength:"10"`
//	}
//
// 3. Middleware Support
//
// The API includes middleware for:
// - Request logging with unique request IDs
// - Rate limiting per IP address, behind the rate_limit_enabled flag
// - CORS handling
//
// # Usage Example
//
//	server := api.NewServer(api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  30,
//	    RateWindow: time.Minute,
//	    Flags:      flags,
//	}, pipelineService)
//	defer server.Close()
//
//	http.ListenAndServe(":8000", server.Router)
//
// # Error Handling
//
// Analysis failures are reported in the body with success=false and a 200
// status. Invalid input uses the RFC 7807 error format:
//
//	{
//	    "status": 400,
//	    "title": "Bad Request",
//	    "detail": "validation error on field 'file': unsupported file type \"text/plain\"..."
//	}
package api
