// ABOUTME: Analysis handlers for the Huma API
// ABOUTME: Text, image and site analysis endpoints over the pipeline

package handlers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"competitor-monitor-api/api/dto/mappers"
	"competitor-monitor-api/api/dto/requests"
	"competitor-monitor-api/api/dto/responses"
	"competitor-monitor-api/core/domain"
	"competitor-monitor-api/core/pipeline"
	"github.com/danielgtaylor/huma/v2"
)

// MaxImageUploadBytes bounds the multipart body of an image upload
const MaxImageUploadBytes = 10 << 20

// Pipeline is the subset of the analysis pipeline used by the handlers
type Pipeline interface {
	AnalyzeText(ctx context.Context, input string) (pipeline.TextResult, error)
	AnalyzeImage(ctx context.Context, input pipeline.ImageInput) (pipeline.ImageResult, error)
	AnalyzeSite(ctx context.Context, url string) (pipeline.SiteResult, error)
	History(ctx context.Context) ([]domain.HistoryEntry, int)
	ClearHistory(ctx context.Context) error
}

// AnalysisHandler handles the analysis endpoints
type AnalysisHandler struct {
	pipeline Pipeline
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(p Pipeline) *AnalysisHandler {
	return &AnalysisHandler{pipeline: p}
}

// RegisterRoutes registers all analysis routes
func (h *AnalysisHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "analyzeText",
		Method:      http.MethodPost,
		Path:        "/analyze_text",
		Summary:     "Analyze competitor text",
		Description: "Sends competitor copy to the model and returns strengths, weaknesses, unique offers and recommendations",
		Tags:        []string{"Analysis"},
	}, h.AnalyzeText)

	huma.Register(api, huma.Operation{
		OperationID:  "analyzeImage",
		Method:       http.MethodPost,
		Path:         "/analyze_image",
		Summary:      "Analyze a competitor image",
		Description:  "Accepts a JPEG, PNG, GIF or WebP upload in the multipart field \"file\"",
		Tags:         []string{"Analysis"},
		MaxBodyBytes: MaxImageUploadBytes,
	}, h.AnalyzeImage)

	huma.Register(api, huma.Operation{
		OperationID: "parseDemo",
		Method:      http.MethodPost,
		Path:        "/parse_demo",
		Summary:     "Parse and analyze a competitor site",
		Description: "Loads the page in a headless browser, extracts title, first heading and first paragraph, and analyzes them with the screenshot",
		Tags:        []string{"Analysis"},
	}, h.ParseDemo)
}

// AnalyzeTextInput defines the input for the AnalyzeText operation
type AnalyzeTextInput struct {
	Body requests.TextAnalysisRequest
}

// AnalyzeTextOutput defines the output for the AnalyzeText operation
type AnalyzeTextOutput struct {
	Body responses.TextAnalysisResponse
}

// AnalyzeText handles POST /analyze_text
func (h *AnalysisHandler) AnalyzeText(ctx context.Context, input *AnalyzeTextInput) (*AnalyzeTextOutput, error) {
	result, err := h.pipeline.AnalyzeText(ctx, input.Body.Text)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &AnalyzeTextOutput{Body: mappers.ToTextAnalysisResponse(result)}, nil
}

// AnalyzeImageInput defines the multipart input for the AnalyzeImage operation
type AnalyzeImageInput struct {
	RawBody multipart.Form
}

// AnalyzeImageOutput defines the output for the AnalyzeImage operation
type AnalyzeImageOutput struct {
	Body responses.ImageAnalysisResponse
}

// AnalyzeImage handles POST /analyze_image
func (h *AnalysisHandler) AnalyzeImage(ctx context.Context, input *AnalyzeImageInput) (*AnalyzeImageOutput, error) {
	files := input.RawBody.File["file"]
	if len(files) == 0 {
		return nil, huma.Error400BadRequest(`multipart field "file" is required`)
	}

	image, err := readUpload(files[0])
	if err != nil {
		return nil, huma.Error400BadRequest("could not read uploaded file", err)
	}

	result, err := h.pipeline.AnalyzeImage(ctx, image)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &AnalyzeImageOutput{Body: mappers.ToImageAnalysisResponse(result)}, nil
}

// ParseDemoInput defines the input for the ParseDemo operation
type ParseDemoInput struct {
	Body requests.ParseDemoRequest
}

// ParseDemoOutput defines the output for the ParseDemo operation
type ParseDemoOutput struct {
	Body responses.ParseDemoResponse
}

// ParseDemo handles POST /parse_demo
func (h *AnalysisHandler) ParseDemo(ctx context.Context, input *ParseDemoInput) (*ParseDemoOutput, error) {
	input.Body.Normalize()

	result, err := h.pipeline.AnalyzeSite(ctx, input.Body.URL)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ParseDemoOutput{Body: mappers.ToParseDemoResponse(result)}, nil
}

// readUpload loads an uploaded file with its declared content type
func readUpload(header *multipart.FileHeader) (pipeline.ImageInput, error) {
	file, err := header.Open()
	if err != nil {
		return pipeline.ImageInput{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return pipeline.ImageInput{}, fmt.Errorf("read %s: %w", header.Filename, err)
	}

	return pipeline.ImageInput{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, nil
}
