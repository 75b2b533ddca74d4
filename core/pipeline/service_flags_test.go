package pipeline

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/pkg/featureflags"
)

// MockAnalyzer records calls through testify/mock
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeText(ctx context.Context, text string) (domain.AnalysisResult, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalyzer) AnalyzeImage(ctx context.Context, b64, mime string) (domain.ImageAnalysisResult, error) {
	args := m.Called(ctx, b64, mime)
	return args.Get(0).(domain.ImageAnalysisResult), args.Error(1)
}

func (m *MockAnalyzer) AnalyzeParsedSite(ctx context.Context, screenshot, url, title, h1, paragraph string) (domain.AnalysisResult, error) {
	args := m.Called(ctx, screenshot, url, title, h1, paragraph)
	return args.Get(0).(domain.AnalysisResult), args.Error(1)
}

func pageWithScreenshot(ctx context.Context, url string) (domain.ParsedPage, error) {
	return domain.ParsedPage{
		URL:        url,
		Title:      "Acme",
		H1:         "Pricing",
		Screenshot: []byte("jpeg-bytes"),
	}, nil
}

func newFlaggedService(analyzer *MockAnalyzer, flags featureflags.Manager) *Service {
	return NewService(Dependencies{
		Analyzer: analyzer,
		Pages:    &mockPages{fetchFunc: pageWithScreenshot},
		History:  &mockHistory{},
		Logger:   &mockLogger{},
		Flags:    flags,
	})
}

func TestAnalyzeSiteWithFlags_ScreenshotSentWhenEnabled(t *testing.T) {
	analyzer := new(MockAnalyzer)
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.ScreenshotAnalysisEnabled: true,
	})

	encoded := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	analyzer.On("AnalyzeParsedSite", mock.Anything, encoded, "https://acme.io", "Acme", "Pricing", "").
		Return(domain.AnalysisResult{Summary: "visual"}, nil).Once()

	result, err := newFlaggedService(analyzer, flags).AnalyzeSite(context.Background(), "https://acme.io")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "visual", result.Data.Analysis.Summary)
	analyzer.AssertExpectations(t)
}

func TestAnalyzeSiteWithFlags_TextFallbackWhenDisabled(t *testing.T) {
	analyzer := new(MockAnalyzer)
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.ScreenshotAnalysisEnabled: false,
	})

	analyzer.On("AnalyzeParsedSite", mock.Anything, "", "https://acme.io", "Acme", "Pricing", "").
		Return(domain.AnalysisResult{Summary: "text only"}, nil).Once()

	result, err := newFlaggedService(analyzer, flags).AnalyzeSite(context.Background(), "https://acme.io")

	require.NoError(t, err)
	assert.Equal(t, "text only", result.Data.Analysis.Summary)
	analyzer.AssertExpectations(t)
	analyzer.AssertNotCalled(t, "AnalyzeText", mock.Anything, mock.Anything)
}

func TestAnalyzeSiteWithFlags_NilManagerKeepsScreenshots(t *testing.T) {
	analyzer := new(MockAnalyzer)
	analyzer.On("AnalyzeParsedSite", mock.Anything, mock.MatchedBy(func(s string) bool { return s != "" }),
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.NewAnalysisResult(), nil).Once()

	_, err := newFlaggedService(analyzer, nil).AnalyzeSite(context.Background(), "https://acme.io")

	require.NoError(t, err)
	analyzer.AssertExpectations(t)
}
