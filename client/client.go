// ABOUTME: HTTP client for the Competitor Monitor API
// ABOUTME: Analysis calls never fail outright; problems become success=false results

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"competitor-monitor-api/api/dto/requests"
	"competitor-monitor-api/api/dto/responses"
	"competitor-monitor-api/core/interfaces"
	"competitor-monitor-api/infrastructure/http/standard"
)

const userAgent = "CompetitorMonitorClient/1.0"

// Client talks to a running Competitor Monitor server
type Client struct {
	baseURL string
	http    interfaces.HTTPClient
}

// New creates a client with the given options
func New(options ...Option) (*Client, error) {
	config := defaultConfig()
	for _, opt := range options {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = standard.NewStandardHTTPClient(config.Timeout, standard.WithUserAgent(userAgent))
	}

	return &Client{baseURL: config.BaseURL, http: httpClient}, nil
}

// BaseURL returns the server address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health returns the server identity
func (c *Client) Health(ctx context.Context) (responses.HealthResponse, error) {
	var out responses.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", "", nil, &out)
	return out, err
}

// AnalyzeText sends competitor text for analysis
func (c *Client) AnalyzeText(ctx context.Context, text string) responses.TextAnalysisResponse {
	body, err := json.Marshal(requests.TextAnalysisRequest{Text: text})
	if err != nil {
		return responses.TextAnalysisResponse{Error: err.Error()}
	}

	var out responses.TextAnalysisResponse
	if err := c.do(ctx, http.MethodPost, "/analyze_text", "application/json", body, &out); err != nil {
		return responses.TextAnalysisResponse{Error: UserMessage(err)}
	}
	return out
}

// AnalyzeImage uploads the image at path for analysis
func (c *Client) AnalyzeImage(ctx context.Context, path string) responses.ImageAnalysisResponse {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return responses.ImageAnalysisResponse{Error: MessageFileNotFound}
	}
	if err != nil {
		return responses.ImageAnalysisResponse{Error: err.Error()}
	}
	return c.AnalyzeImageBytes(ctx, data, filepath.Base(path), "")
}

// AnalyzeImageBytes uploads image bytes for analysis. An empty contentType
// is guessed from the file extension, then from the data.
func (c *Client) AnalyzeImageBytes(ctx context.Context, data []byte, filename, contentType string) responses.ImageAnalysisResponse {
	if filename == "" {
		filename = "image.jpg"
	}
	if contentType == "" {
		contentType = DetectContentType(filename, data)
	}

	body, formType, err := imageForm(data, filename, contentType)
	if err != nil {
		return responses.ImageAnalysisResponse{Error: err.Error()}
	}

	var out responses.ImageAnalysisResponse
	if err := c.do(ctx, http.MethodPost, "/analyze_image", formType, body, &out); err != nil {
		return responses.ImageAnalysisResponse{Error: UserMessage(err)}
	}
	return out
}

// ParseSite asks the server to load and analyze a site
func (c *Client) ParseSite(ctx context.Context, url string) responses.ParseDemoResponse {
	body, err := json.Marshal(requests.ParseDemoRequest{URL: url})
	if err != nil {
		return responses.ParseDemoResponse{Error: err.Error()}
	}

	var out responses.ParseDemoResponse
	if err := c.do(ctx, http.MethodPost, "/parse_demo", "application/json", body, &out); err != nil {
		return responses.ParseDemoResponse{Error: UserMessage(err)}
	}
	return out
}

// History lists recent requests, newest first
func (c *Client) History(ctx context.Context) (responses.HistoryResponse, error) {
	var out responses.HistoryResponse
	err := c.do(ctx, http.MethodGet, "/history", "", nil, &out)
	return out, err
}

// ClearHistory empties the request history
func (c *Client) ClearHistory(ctx context.Context) (responses.ClearHistoryResponse, error) {
	var out responses.ClearHistoryResponse
	err := c.do(ctx, http.MethodDelete, "/history", "", nil, &out)
	return out, err
}

// DetectContentType guesses an image type from the file name, then the data
func DetectContentType(filename string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
	}
	return http.DetectContentType(data)
}

// do sends one request and decodes a 2xx JSON body into out
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte, out any) error {
	url := c.baseURL + path

	var resp interfaces.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, url)
	case http.MethodPost:
		resp, err = c.http.Post(ctx, url, contentType, bytes.NewReader(body))
	case http.MethodDelete:
		resp, err = c.http.Delete(ctx, url)
	default:
		return NewError(ErrorTypeInternal, "unsupported method "+method)
	}
	if err != nil {
		return transportError(ctx, err)
	}
	defer resp.Body().Close()

	data, err := io.ReadAll(resp.Body())
	if err != nil {
		return transportError(ctx, err)
	}

	if resp.StatusCode() >= 400 {
		return statusError(resp.StatusCode(), data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return NewError(ErrorTypeInternal, "invalid response from server").WithCause(err)
	}
	return nil
}

// imageForm builds a multipart body with the image in the "file" field
func imageForm(data []byte, filename, contentType string) ([]byte, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

// transportError classifies a failed exchange with the server
func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewError(ErrorTypeTimeout, MessageTimeout).WithCause(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewError(ErrorTypeTimeout, MessageTimeout).WithCause(err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return NewError(ErrorTypeNetwork, MessageConnection).WithCause(err)
	}

	return NewError(ErrorTypeNetwork, err.Error()).WithCause(err)
}

// statusError turns an error status and its problem body into an Error
func statusError(status int, body []byte) error {
	var problem struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	message := http.StatusText(status)
	if json.Unmarshal(body, &problem) == nil {
		switch {
		case problem.Detail != "":
			message = problem.Detail
		case problem.Title != "":
			message = problem.Title
		}
	}

	return &Error{
		Type:       ErrorTypeHTTP,
		Message:    fmt.Sprintf("HTTP error %d: %s", status, message),
		StatusCode: status,
	}
}
