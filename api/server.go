// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation and request/response validation

package api

import (
	"context"
	"net/http"
	"time"

	"competitor-monitor-api/api/handlers"
	"competitor-monitor-api/api/middleware"
	"competitor-monitor-api/core/interfaces"
	"competitor-monitor-api/pkg/featureflags"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
	// Flags gates optional middleware; nil enables everything configured
	Flags featureflags.Manager
}

// Server bundles the API with the resources that must be released on shutdown
type Server struct {
	API     huma.API
	Router  chi.Router
	limiter *middleware.RateLimiter
}

// Close stops background middleware work
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

// NewServer creates the API with middleware and every route registered
func NewServer(cfg APIConfig, pipeline handlers.Pipeline) *Server {
	router := chi.NewRouter()

	// CORS should be first middleware
	router.Use(corsHandler())

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	server := &Server{Router: router}

	rateLimitOn := cfg.Flags == nil || cfg.Flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled)
	if rateLimitOn && cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		server.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(server.limiter))
	}

	server.API = humachi.New(router, apiConfig())

	handlers.RegisterHealth(server.API)
	handlers.NewAnalysisHandler(pipeline).RegisterRoutes(server.API)
	handlers.NewHistoryHandler(pipeline).RegisterRoutes(server.API)

	return server
}

// corsHandler allows every origin; the API is consumed by local tools
func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})
}

func apiConfig() huma.Config {
	config := huma.DefaultConfig("Competitor Monitor API", handlers.ServiceVersion)
	config.Info.Description = "Competitive analysis of competitor texts, images and websites"
	return config
}
