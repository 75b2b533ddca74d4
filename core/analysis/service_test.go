package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"competitor-monitor-api/core/domain"
	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/core/interfaces"
)

func newTestService(t *testing.T, completer *mockCompleter) *Service {
	t.Helper()
	svc, err := NewService(completer, &mockLogger{}, Config{
		TextModel:   "text-model",
		VisionModel: "vision-model",
		Language:    "English",
	})
	require.NoError(t, err)
	return svc
}

func TestAnalyzeText_ParsesFencedReply(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return "Here you go:\n```json\n{\"strengths\": [\"fast delivery\"], \"summary\": \"ok\"}\n```", nil
		},
	}
	svc := newTestService(t, completer)

	result, err := svc.AnalyzeText(context.Background(), "Our shop delivers in one hour")
	require.NoError(t, err)

	assert.Equal(t, []string{"fast delivery"}, result.Strengths)
	assert.Equal(t, []string{}, result.Weaknesses)
	assert.Equal(t, "ok", result.Summary)

	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	assert.Equal(t, "text-model", req.Model)
	assert.Equal(t, 0.7, req.Temperature)
	assert.Equal(t, 2000, req.MaxTokens)
	assert.Empty(t, req.ImageDataURI)
	assert.True(t, strings.HasSuffix(req.UserText, "Our shop delivers in one hour"))
	assert.Contains(t, req.SystemPrompt, "Write in English")
}

func TestAnalyzeText_UnparseableReply(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return "I cannot help with that", nil
		},
	}
	svc := newTestService(t, completer)

	result, err := svc.AnalyzeText(context.Background(), "some competitor text")
	require.NoError(t, err)
	assert.Equal(t, domain.NewAnalysisResult(), result)
}

func TestAnalyzeText_WrapsTransportFailure(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return "", errors.New("dial tcp: connection refused")
		},
	}
	svc := newTestService(t, completer)

	_, err := svc.AnalyzeText(context.Background(), "some competitor text")
	require.Error(t, err)
	assert.True(t, coreerrors.IsTransport(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAnalyzeText_KeepsExistingTransportError(t *testing.T) {
	original := &coreerrors.TransportError{API: "openai", StatusCode: 401, Message: "invalid key"}
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return "", original
		},
	}
	svc := newTestService(t, completer)

	_, err := svc.AnalyzeText(context.Background(), "some competitor text")
	assert.Same(t, original, err)
}

func TestAnalyzeImage_SendsDataURIAndClampsScore(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return `{"description": "A red banner", "visual_style_score": 14, "marketing_insights": ["bold"]}`, nil
		},
	}
	svc := newTestService(t, completer)

	result, err := svc.AnalyzeImage(context.Background(), "aGVsbG8=", "image/png")
	require.NoError(t, err)

	assert.Equal(t, "A red banner", result.Description)
	assert.Equal(t, 10, result.VisualStyleScore)
	assert.Equal(t, []string{"bold"}, result.MarketingInsights)
	assert.Equal(t, []string{}, result.Recommendations)

	require.Len(t, completer.requests, 1)
	assert.Equal(t, "vision-model", completer.requests[0].Model)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", completer.requests[0].ImageDataURI)
}

func TestAnalyzeImage_DefaultScore(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return "no json here", nil
		},
	}
	svc := newTestService(t, completer)

	result, err := svc.AnalyzeImage(context.Background(), "aGVsbG8=", "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVisualStyleScore, result.VisualStyleScore)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", completer.requests[0].ImageDataURI)
}

func TestAnalyzeParsedSite_WithScreenshot(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return `{"summary": "solid landing page"}`, nil
		},
	}
	svc := newTestService(t, completer)

	paragraph := strings.Repeat("p", 400)
	result, err := svc.AnalyzeParsedSite(context.Background(), "c2hvdA==", "https://example.com", "Example", "Welcome", paragraph)
	require.NoError(t, err)
	assert.Equal(t, "solid landing page", result.Summary)

	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	assert.Equal(t, "vision-model", req.Model)
	assert.Equal(t, 3000, req.MaxTokens)
	assert.Equal(t, "data:image/jpeg;base64,c2hvdA==", req.ImageDataURI)
	assert.Contains(t, req.UserText, "Site URL: https://example.com")
	assert.Contains(t, req.UserText, "Main heading (H1): Welcome")
	assert.Contains(t, req.UserText, strings.Repeat("p", 300))
	assert.NotContains(t, req.UserText, strings.Repeat("p", 301))
}

func TestAnalyzeParsedSite_FallsBackToText(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, req interfaces.ChatRequest) (string, error) {
			return `{"summary": "text only"}`, nil
		},
	}
	svc := newTestService(t, completer)

	result, err := svc.AnalyzeParsedSite(context.Background(), "", "https://example.com", "Example", "", "First paragraph text")
	require.NoError(t, err)
	assert.Equal(t, "text only", result.Summary)

	require.Len(t, completer.requests, 1)
	req := completer.requests[0]
	assert.Equal(t, "text-model", req.Model)
	assert.Empty(t, req.ImageDataURI)
	assert.Contains(t, req.UserText, "Page title: Example")
	assert.NotContains(t, req.UserText, "Main heading")
}

func TestAnalyzeParsedContent_EmptyShortCircuits(t *testing.T) {
	completer := &mockCompleter{}
	warned := false
	svc, err := NewService(completer, &mockLogger{
		warnFunc: func(msg string, fields map[string]interface{}) { warned = true },
	}, Config{TextModel: "m", VisionModel: "v"})
	require.NoError(t, err)

	result, err := svc.AnalyzeParsedContent(context.Background(), "", "", "")
	require.NoError(t, err)

	assert.Empty(t, completer.requests)
	assert.True(t, warned)
	assert.Equal(t, NoContentSummary, result.Summary)
	assert.Equal(t, []string{}, result.Strengths)
}

func TestNewService_DefaultLanguage(t *testing.T) {
	svc, err := NewService(&mockCompleter{}, &mockLogger{}, Config{})
	require.NoError(t, err)
	assert.Contains(t, svc.prompts.Text, "Write in Russian")
}
