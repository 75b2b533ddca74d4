// ABOUTME: History handlers for the Huma API
// ABOUTME: Lists and clears the log of recent analysis requests

package handlers

import (
	"context"
	"net/http"

	"competitor-monitor-api/api/dto/mappers"
	"competitor-monitor-api/api/dto/responses"
	"github.com/danielgtaylor/huma/v2"
)

// HistoryHandler handles the history endpoints
type HistoryHandler struct {
	pipeline Pipeline
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(p Pipeline) *HistoryHandler {
	return &HistoryHandler{pipeline: p}
}

// RegisterRoutes registers the history routes
func (h *HistoryHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getHistory",
		Method:      http.MethodGet,
		Path:        "/history",
		Summary:     "List recent requests",
		Tags:        []string{"History"},
	}, h.GetHistory)

	huma.Register(api, huma.Operation{
		OperationID: "clearHistory",
		Method:      http.MethodDelete,
		Path:        "/history",
		Summary:     "Clear the request history",
		Tags:        []string{"History"},
	}, h.ClearHistory)
}

// GetHistoryOutput defines the output for the GetHistory operation
type GetHistoryOutput struct {
	Body responses.HistoryResponse
}

// GetHistory handles GET /history
func (h *HistoryHandler) GetHistory(ctx context.Context, _ *struct{}) (*GetHistoryOutput, error) {
	entries, total := h.pipeline.History(ctx)
	return &GetHistoryOutput{Body: mappers.ToHistoryResponse(entries, total)}, nil
}

// ClearHistoryOutput defines the output for the ClearHistory operation
type ClearHistoryOutput struct {
	Body responses.ClearHistoryResponse
}

// ClearHistory handles DELETE /history
func (h *HistoryHandler) ClearHistory(ctx context.Context, _ *struct{}) (*ClearHistoryOutput, error) {
	if err := h.pipeline.ClearHistory(ctx); err != nil {
		return nil, toHumaError(err)
	}
	return &ClearHistoryOutput{Body: responses.ClearHistoryResponse{
		Success: true,
		Message: "History cleared",
	}}, nil
}
