package pipeline

import (
	"context"

	"competitor-monitor-api/core/domain"
)

// mockAnalyzer is a mock implementation of the Analyzer interface
type mockAnalyzer struct {
	analyzeTextFunc  func(ctx context.Context, text string) (domain.AnalysisResult, error)
	analyzeImageFunc func(ctx context.Context, b64, mime string) (domain.ImageAnalysisResult, error)
	analyzeSiteFunc  func(ctx context.Context, screenshot, url, title, h1, paragraph string) (domain.AnalysisResult, error)
	calls            int
}

func (m *mockAnalyzer) AnalyzeText(ctx context.Context, text string) (domain.AnalysisResult, error) {
	m.calls++
	if m.analyzeTextFunc != nil {
		return m.analyzeTextFunc(ctx, text)
	}
	return domain.NewAnalysisResult(), nil
}

func (m *mockAnalyzer) AnalyzeImage(ctx context.Context, b64, mime string) (domain.ImageAnalysisResult, error) {
	m.calls++
	if m.analyzeImageFunc != nil {
		return m.analyzeImageFunc(ctx, b64, mime)
	}
	return domain.ImageAnalysisResult{VisualStyleScore: domain.DefaultVisualStyleScore}, nil
}

func (m *mockAnalyzer) AnalyzeParsedSite(ctx context.Context, screenshot, url, title, h1, paragraph string) (domain.AnalysisResult, error) {
	m.calls++
	if m.analyzeSiteFunc != nil {
		return m.analyzeSiteFunc(ctx, screenshot, url, title, h1, paragraph)
	}
	return domain.NewAnalysisResult(), nil
}

// mockPages is a mock implementation of the PageSource interface
type mockPages struct {
	fetchFunc func(ctx context.Context, url string) (domain.ParsedPage, error)
}

func (m *mockPages) Fetch(ctx context.Context, url string) (domain.ParsedPage, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, url)
	}
	return domain.ParsedPage{URL: url}, nil
}

// mockHistory is an in-memory implementation of the HistoryStore interface
type mockHistory struct {
	entries   []domain.HistoryEntry
	appendErr error
	clears    int
}

func (m *mockHistory) Append(ctx context.Context, kind domain.RequestType, req, resp string) (domain.HistoryEntry, error) {
	entry := domain.NewHistoryEntry(kind, req, resp)
	if m.appendErr != nil {
		return entry, m.appendErr
	}
	m.entries = append([]domain.HistoryEntry{entry}, m.entries...)
	return entry, nil
}

func (m *mockHistory) List(ctx context.Context) []domain.HistoryEntry {
	return m.entries
}

func (m *mockHistory) Clear(ctx context.Context) error {
	m.clears++
	m.entries = nil
	return nil
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	errorFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  {}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	if m.errorFunc != nil {
		m.errorFunc(msg, fields)
	}
}
