// ABOUTME: Response DTOs for the analysis, history and health endpoints
// ABOUTME: Every analysis endpoint answers with the same success/payload/error shape

package responses

import (
	"time"

	"competitor-monitor-api/core/domain"
)

// TextAnalysisResponse answers POST /analyze_text
type TextAnalysisResponse struct {
	Success  bool                   `json:"success" doc:"Whether the analysis succeeded"`
	Analysis *domain.AnalysisResult `json:"analysis,omitempty" doc:"Structured competitive analysis"`
	Error    string                 `json:"error,omitempty" doc:"Failure message"`
}

// ImageAnalysisResponse answers POST /analyze_image
type ImageAnalysisResponse struct {
	Success  bool                        `json:"success" doc:"Whether the analysis succeeded"`
	Analysis *domain.ImageAnalysisResult `json:"analysis,omitempty" doc:"Structured image analysis"`
	Error    string                      `json:"error,omitempty" doc:"Failure message"`
}

// ParseDemoResponse answers POST /parse_demo
type ParseDemoResponse struct {
	Success bool                 `json:"success" doc:"Whether the site was parsed and analyzed"`
	Data    *domain.SiteAnalysis `json:"data,omitempty" doc:"Extracted page fields and analysis"`
	Error   string               `json:"error,omitempty" doc:"Failure message"`
}

// HistoryItemResponse is one history entry
type HistoryItemResponse struct {
	ID              string    `json:"id" doc:"Entry identifier"`
	Timestamp       time.Time `json:"timestamp" doc:"When the request was handled"`
	RequestType     string    `json:"request_type" enum:"text,image,parse" doc:"Pipeline that produced the entry"`
	RequestSummary  string    `json:"request_summary" doc:"Short description of the request"`
	ResponseSummary string    `json:"response_summary" doc:"Short description of the result"`
}

// HistoryResponse answers GET /history
type HistoryResponse struct {
	Items []HistoryItemResponse `json:"items" doc:"Entries, newest first"`
	Total int                   `json:"total" doc:"Number of entries"`
}

// ClearHistoryResponse answers DELETE /history
type ClearHistoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HealthResponse answers GET /health
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service"`
	Version string `json:"version"`
}
