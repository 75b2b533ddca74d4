package handlers

import (
	"context"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/pipeline"
)

// mockPipeline is a mock implementation of the Pipeline interface
type mockPipeline struct {
	analyzeTextFunc  func(ctx context.Context, input string) (pipeline.TextResult, error)
	analyzeImageFunc func(ctx context.Context, input pipeline.ImageInput) (pipeline.ImageResult, error)
	analyzeSiteFunc  func(ctx context.Context, url string) (pipeline.SiteResult, error)
	historyFunc      func(ctx context.Context) ([]domain.HistoryEntry, int)
	clearHistoryFunc func(ctx context.Context) error
}

func (m *mockPipeline) AnalyzeText(ctx context.Context, input string) (pipeline.TextResult, error) {
	if m.analyzeTextFunc != nil {
		return m.analyzeTextFunc(ctx, input)
	}
	return pipeline.TextResult{}, nil
}

func (m *mockPipeline) AnalyzeImage(ctx context.Context, input pipeline.ImageInput) (pipeline.ImageResult, error) {
	if m.analyzeImageFunc != nil {
		return m.analyzeImageFunc(ctx, input)
	}
	return pipeline.ImageResult{}, nil
}

func (m *mockPipeline) AnalyzeSite(ctx context.Context, url string) (pipeline.SiteResult, error) {
	if m.analyzeSiteFunc != nil {
		return m.analyzeSiteFunc(ctx, url)
	}
	return pipeline.SiteResult{}, nil
}

func (m *mockPipeline) History(ctx context.Context) ([]domain.HistoryEntry, int) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx)
	}
	return []domain.HistoryEntry{}, 0
}

func (m *mockPipeline) ClearHistory(ctx context.Context) error {
	if m.clearHistoryFunc != nil {
		return m.clearHistoryFunc(ctx)
	}
	return nil
}
