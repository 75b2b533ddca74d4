// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Contracts between the pipeline and the analysis, page and history services

package interfaces

import (
	"context"

	"competitor-monitor-api/core/domain"
)

// Analyzer sends prompts to the model and returns normalized results
type Analyzer interface {
	AnalyzeText(ctx context.Context, text string) (domain.AnalysisResult, error)
	AnalyzeImage(ctx context.Context, imageBase64, mimeType string) (domain.ImageAnalysisResult, error)
	AnalyzeParsedSite(ctx context.Context, screenshotBase64, url, title, h1, paragraph string) (domain.AnalysisResult, error)
}

// PageSource produces parsed pages. The fetcher and the bounded worker pool
// both implement it.
type PageSource interface {
	Fetch(ctx context.Context, url string) (domain.ParsedPage, error)
}

// HistoryStore is the bounded log of past pipeline invocations
type HistoryStore interface {
	Append(ctx context.Context, kind domain.RequestType, requestSummary, responseSummary string) (domain.HistoryEntry, error)
	List(ctx context.Context) []domain.HistoryEntry
	Clear(ctx context.Context) error
}
