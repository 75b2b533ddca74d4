package handlers

import (
	"context"
	"net/http"

	"competitor-monitor-api/api/dto/responses"
	"github.com/danielgtaylor/huma/v2"
)

// Service identity reported by the health endpoint
const (
	ServiceName    = "Competitor Monitor"
	ServiceVersion = "1.0.0"
)

// HealthOutput defines the output for the Health operation
type HealthOutput struct {
	Body responses.HealthResponse
}

// RegisterHealth registers GET /health
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
	}, func(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: responses.HealthResponse{
			Status:  "healthy",
			Service: ServiceName,
			Version: ServiceVersion,
		}}, nil
	})
}
