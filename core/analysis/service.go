// ABOUTME: Model client service building prompts for text, image and site analysis
// ABOUTME: Sends one chat completion per call and normalizes the reply into domain results

package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"competitor-monitor-api/core/domain"
	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/core/interfaces"
	"competitor-monitor-api/core/normalizer"
	"competitor-monitor-api/pkg/utils/text"
)

const (
	// Temperature is fixed for every call kind
	Temperature = 0.7

	textMaxTokens  = 2000
	imageMaxTokens = 2000
	siteMaxTokens  = 3000

	siteContextParagraphLength = 300

	// NoContentSummary is returned when a page yielded nothing to analyze
	NoContentSummary = "Could not extract any content for analysis"
)

// Config holds the model identifiers and prompt settings
type Config struct {
	TextModel   string
	VisionModel string
	Language    string
}

// Service implements interfaces.Analyzer on top of a ChatCompleter
type Service struct {
	completer interfaces.ChatCompleter
	logger    interfaces.Logger
	config    Config
	prompts   Prompts
}

// NewService creates an analysis service. It fails only if the embedded
// prompt catalogue cannot be rendered.
func NewService(completer interfaces.ChatCompleter, logger interfaces.Logger, config Config) (*Service, error) {
	if config.Language == "" {
		config.Language = "Russian"
	}
	prompts, err := LoadPrompts(config.Language)
	if err != nil {
		return nil, err
	}
	return &Service{
		completer: completer,
		logger:    logger,
		config:    config,
		prompts:   prompts,
	}, nil
}

// AnalyzeText runs a competitive analysis of free text
func (s *Service) AnalyzeText(ctx context.Context, input string) (domain.AnalysisResult, error) {
	content, err := s.complete(ctx, "text", interfaces.ChatRequest{
		Model:        s.config.TextModel,
		SystemPrompt: s.prompts.Text,
		UserText:     "Analyze the competitor text:\n\n" + input,
		Temperature:  Temperature,
		MaxTokens:    textMaxTokens,
	})
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return normalizer.Analysis(content), nil
}

// AnalyzeImage runs a visual marketing analysis of a base64-encoded image
func (s *Service) AnalyzeImage(ctx context.Context, imageBase64, mimeType string) (domain.ImageAnalysisResult, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	content, err := s.complete(ctx, "image", interfaces.ChatRequest{
		Model:        s.config.VisionModel,
		SystemPrompt: s.prompts.Image,
		UserText:     "Analyze this competitor image from a marketing and design perspective:",
		ImageDataURI: DataURI(mimeType, imageBase64),
		Temperature:  Temperature,
		MaxTokens:    imageMaxTokens,
	})
	if err != nil {
		return domain.ImageAnalysisResult{}, err
	}
	return normalizer.ImageAnalysis(content), nil
}

// AnalyzeParsedSite analyzes a fetched site. With a screenshot the vision
// model gets the image plus the extracted context; without one it falls back
// to a text-only analysis of the extracted fields.
func (s *Service) AnalyzeParsedSite(ctx context.Context, screenshotBase64, url, title, h1, paragraph string) (domain.AnalysisResult, error) {
	if screenshotBase64 == "" {
		return s.AnalyzeParsedContent(ctx, title, h1, paragraph)
	}

	content, err := s.complete(ctx, "site", interfaces.ChatRequest{
		Model:        s.config.VisionModel,
		SystemPrompt: s.prompts.Site,
		UserText:     "Run a comprehensive competitive analysis of this website:\n\n" + SiteContext(url, title, h1, paragraph),
		ImageDataURI: DataURI("image/jpeg", screenshotBase64),
		Temperature:  Temperature,
		MaxTokens:    siteMaxTokens,
	})
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return normalizer.Analysis(content), nil
}

// AnalyzeParsedContent analyzes the text fields extracted from a page. When
// every field is blank it returns a placeholder result without calling the
// model.
func (s *Service) AnalyzeParsedContent(ctx context.Context, title, h1, paragraph string) (domain.AnalysisResult, error) {
	combined := ParsedContentText(title, h1, paragraph)
	if strings.TrimSpace(combined) == "" {
		s.logger.Warn("No page content to analyze", nil)
		result := domain.NewAnalysisResult()
		result.Summary = NoContentSummary
		return result, nil
	}
	return s.AnalyzeText(ctx, combined)
}

func (s *Service) complete(ctx context.Context, kind string, req interfaces.ChatRequest) (string, error) {
	start := time.Now()
	s.logger.Debug("Sending model request", map[string]interface{}{
		"kind":       kind,
		"model":      req.Model,
		"max_tokens": req.MaxTokens,
		"with_image": req.ImageDataURI != "",
	})

	content, err := s.completer.Complete(ctx, req)
	if err != nil {
		s.logger.Error("Model request failed", map[string]interface{}{
			"kind":     kind,
			"model":    req.Model,
			"duration": time.Since(start).String(),
			"error":    err.Error(),
		})
		if !coreerrors.IsTransport(err) {
			err = &coreerrors.TransportError{API: "model", Message: err.Error(), Err: err}
		}
		return "", err
	}

	s.logger.Info("Model request completed", map[string]interface{}{
		"kind":          kind,
		"model":         req.Model,
		"duration":      time.Since(start).String(),
		"response_size": len(content),
	})
	return content, nil
}

// DataURI builds an inline image data URI
func DataURI(mimeType, base64Payload string) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64Payload)
}

// SiteContext builds the context block sent alongside a site screenshot
func SiteContext(url, title, h1, paragraph string) string {
	parts := []string{"Site URL: " + url}
	if title != "" {
		parts = append(parts, "Page title: "+title)
	}
	if h1 != "" {
		parts = append(parts, "Main heading (H1): "+h1)
	}
	if paragraph != "" {
		parts = append(parts, "Page text: "+text.Truncate(paragraph, siteContextParagraphLength))
	}
	return strings.Join(parts, "\n")
}

// ParsedContentText builds the text-only prompt from extracted page fields,
// skipping empty ones
func ParsedContentText(title, h1, paragraph string) string {
	var parts []string
	if title != "" {
		parts = append(parts, "Page title: "+title)
	}
	if h1 != "" {
		parts = append(parts, "Main heading (H1): "+h1)
	}
	if paragraph != "" {
		parts = append(parts, "First paragraph: "+paragraph)
	}
	return strings.Join(parts, "\n\n")
}
