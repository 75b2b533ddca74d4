// ABOUTME: Analysis pipeline validates requests and orchestrates fetcher, model and history
// ABOUTME: Every entry point returns a uniform success/failure result and never panics

package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"competitor-monitor-api/core/domain"
	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/core/interfaces"
	"competitor-monitor-api/pkg/featureflags"
	"competitor-monitor-api/pkg/utils/text"
)

// Input limits and history summary settings
const (
	MinTextLength = 10

	textRequestSummaryLength   = 100
	imageResponseSummaryLength = 200
	siteResponseSummaryLength  = 100

	fallbackImageSummary = "Image analysis"
	internalErrorMessage = "internal error"
)

// AllowedImageTypes lists the accepted image content types
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// Dependencies holds the collaborators of the pipeline
type Dependencies struct {
	Analyzer interfaces.Analyzer
	Pages    interfaces.PageSource
	History  interfaces.HistoryStore
	Logger   interfaces.Logger
	// Flags is optional; a nil manager leaves every optional behaviour on
	Flags featureflags.Manager
}

// TextResult is the outcome of a text analysis
type TextResult struct {
	Success  bool
	Analysis *domain.AnalysisResult
	Error    string
}

// ImageInput is an uploaded image
type ImageInput struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ImageResult is the outcome of an image analysis
type ImageResult struct {
	Success  bool
	Analysis *domain.ImageAnalysisResult
	Error    string
}

// SiteResult is the outcome of a site analysis
type SiteResult struct {
	Success bool
	Data    *domain.SiteAnalysis
	Error   string
}

// Service is the analysis pipeline
type Service struct {
	deps Dependencies
}

// NewService creates a pipeline over deps
func NewService(deps Dependencies) *Service {
	return &Service{deps: deps}
}

// AnalyzeText validates and analyzes competitor text. The error is non-nil
// only for a *errors.ValidationError.
func (s *Service) AnalyzeText(ctx context.Context, input string) (result TextResult, err error) {
	defer s.recoverInto("text", func() { result, err = TextResult{Error: internalErrorMessage}, nil })

	if text.Len(input) < MinTextLength {
		return TextResult{}, &coreerrors.ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("text must be at least %d characters", MinTextLength),
		}
	}

	analysis, err := s.deps.Analyzer.AnalyzeText(ctx, input)
	if err != nil {
		s.logFailure("text", err)
		return TextResult{Error: failureMessage(err)}, nil
	}

	s.record(ctx, domain.RequestTypeText,
		text.TruncateWithEllipsis(input, textRequestSummaryLength),
		analysis.Summary)

	return TextResult{Success: true, Analysis: &analysis}, nil
}

// AnalyzeImage validates and analyzes an uploaded image. The error is
// non-nil only for a *errors.ValidationError.
func (s *Service) AnalyzeImage(ctx context.Context, input ImageInput) (result ImageResult, err error) {
	defer s.recoverInto("image", func() { result, err = ImageResult{Error: internalErrorMessage}, nil })

	if err := ValidateImage(input); err != nil {
		return ImageResult{}, err
	}

	encoded := base64.StdEncoding.EncodeToString(input.Data)
	analysis, err := s.deps.Analyzer.AnalyzeImage(ctx, encoded, input.ContentType)
	if err != nil {
		s.logFailure("image", err)
		return ImageResult{Error: failureMessage(err)}, nil
	}

	responseSummary := fallbackImageSummary
	if analysis.Description != "" {
		responseSummary = text.Truncate(analysis.Description, imageResponseSummaryLength)
	}
	s.record(ctx, domain.RequestTypeImage, "Image: "+input.Filename, responseSummary)

	return ImageResult{Success: true, Analysis: &analysis}, nil
}

// AnalyzeSite fetches a page and analyzes it. The result, the model context
// and history keep the URL as the caller sent it, not the fetcher's
// normalized form. A failed fetch is returned as
// a failure result without calling the model or writing history. The error
// is non-nil only for a *errors.ValidationError.
func (s *Service) AnalyzeSite(ctx context.Context, url string) (result SiteResult, err error) {
	defer s.recoverInto("site", func() { result, err = SiteResult{Error: internalErrorMessage}, nil })

	url = strings.TrimSpace(url)
	if url == "" {
		return SiteResult{}, &coreerrors.ValidationError{Field: "url", Message: "url must not be empty"}
	}

	page, err := s.deps.Pages.Fetch(ctx, url)
	if err != nil {
		s.logFailure("site", err)
		return SiteResult{Error: failureMessage(err)}, nil
	}
	if page.Failed() {
		message := page.Error
		return SiteResult{
			Data:  &domain.SiteAnalysis{URL: url, Error: &message},
			Error: message,
		}, nil
	}

	screenshot := ""
	if page.HasScreenshot() && s.enabled(ctx, featureflags.ScreenshotAnalysisEnabled) {
		screenshot = base64.StdEncoding.EncodeToString(page.Screenshot)
	}

	analysis, err := s.deps.Analyzer.AnalyzeParsedSite(ctx, screenshot, url, page.Title, page.H1, page.FirstParagraph)
	if err != nil {
		s.logFailure("site", err)
		return SiteResult{Error: failureMessage(err)}, nil
	}

	responseSummary := text.Truncate(analysis.Summary, siteResponseSummaryLength)
	if responseSummary == "" {
		title := page.Title
		if title == "" {
			title = "N/A"
		}
		responseSummary = "Title: " + title
	}
	s.record(ctx, domain.RequestTypeParse, "URL: "+url, responseSummary)

	return SiteResult{
		Success: true,
		Data: &domain.SiteAnalysis{
			URL:            url,
			Title:          optional(page.Title),
			H1:             optional(page.H1),
			FirstParagraph: optional(page.FirstParagraph),
			Analysis:       &analysis,
		},
	}, nil
}

// History returns the log, newest first, and its length
func (s *Service) History(ctx context.Context) ([]domain.HistoryEntry, int) {
	entries := s.deps.History.List(ctx)
	return entries, len(entries)
}

// ClearHistory empties the log
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.deps.History.Clear(ctx)
}

// ValidateImage checks an upload before it is sent to the model
func ValidateImage(input ImageInput) error {
	allowed := false
	for _, t := range AllowedImageTypes {
		if input.ContentType == t {
			allowed = true
			break
		}
	}
	if !allowed {
		return &coreerrors.ValidationError{
			Field:   "file",
			Message: fmt.Sprintf("unsupported file type %q, allowed: %s", input.ContentType, strings.Join(AllowedImageTypes, ", ")),
		}
	}
	if len(input.Data) == 0 {
		return &coreerrors.ValidationError{Field: "file", Message: "file is empty"}
	}
	return nil
}

func (s *Service) record(ctx context.Context, kind domain.RequestType, requestSummary, responseSummary string) {
	if _, err := s.deps.History.Append(ctx, kind, requestSummary, responseSummary); err != nil {
		s.deps.Logger.Warn("Failed to record history", map[string]interface{}{
			"type":  string(kind),
			"error": err.Error(),
		})
	}
}

func (s *Service) enabled(ctx context.Context, flag featureflags.FeatureFlag) bool {
	if s.deps.Flags == nil {
		return true
	}
	return s.deps.Flags.IsEnabled(ctx, flag)
}

// failureMessage is the text put on a failure result: the raw message of a
// transport error, the error text otherwise
func failureMessage(err error) string {
	var transportErr *coreerrors.TransportError
	if errors.As(err, &transportErr) && transportErr.Message != "" {
		return transportErr.Message
	}
	return err.Error()
}

func (s *Service) logFailure(kind string, err error) {
	s.deps.Logger.Error("Analysis failed", map[string]interface{}{
		"kind":      kind,
		"error":     err.Error(),
		"transport": coreerrors.IsTransport(err),
	})
}

// recoverInto converts a panic into the result set by fail
func (s *Service) recoverInto(kind string, fail func()) {
	if r := recover(); r != nil {
		s.deps.Logger.Error("Recovered from panic in pipeline", map[string]interface{}{
			"kind":  kind,
			"panic": fmt.Sprint(r),
			"stack": string(debug.Stack()),
		})
		fail()
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
