// ABOUTME: Mappers from pipeline results and history entries to API DTOs
// ABOUTME: Keeps the pipeline types out of the HTTP contract

package mappers

import (
	"competitor-monitor-api/api/dto/responses"
	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/pipeline"
)

// ToTextAnalysisResponse converts a text pipeline result
func ToTextAnalysisResponse(result pipeline.TextResult) responses.TextAnalysisResponse {
	return responses.TextAnalysisResponse{
		Success:  result.Success,
		Analysis: result.Analysis,
		Error:    result.Error,
	}
}

// ToImageAnalysisResponse converts an image pipeline result
func ToImageAnalysisResponse(result pipeline.ImageResult) responses.ImageAnalysisResponse {
	return responses.ImageAnalysisResponse{
		Success:  result.Success,
		Analysis: result.Analysis,
		Error:    result.Error,
	}
}

// ToParseDemoResponse converts a site pipeline result
func ToParseDemoResponse(result pipeline.SiteResult) responses.ParseDemoResponse {
	return responses.ParseDemoResponse{
		Success: result.Success,
		Data:    result.Data,
		Error:   result.Error,
	}
}

// ToHistoryResponse converts history entries, keeping their order
func ToHistoryResponse(entries []domain.HistoryEntry, total int) responses.HistoryResponse {
	items := make([]responses.HistoryItemResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, responses.HistoryItemResponse{
			ID:              entry.ID,
			Timestamp:       entry.Timestamp,
			RequestType:     string(entry.RequestType),
			RequestSummary:  entry.RequestSummary,
			ResponseSummary: entry.ResponseSummary,
		})
	}
	return responses.HistoryResponse{Items: items, Total: total}
}
