// ABOUTME: Chat-completions adapter over the official openai-go SDK
// ABOUTME: Works against any OpenAI-compatible endpoint via a configurable base URL

package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	coreerrors "competitor-monitor-api/core/errors"
	"competitor-monitor-api/core/interfaces"
)

const apiName = "openai"

// Config holds endpoint settings
type Config struct {
	APIKey  string
	BaseURL string

	// MaxRetries is passed to the SDK; 0 disables retrying
	MaxRetries int

	// Timeout bounds one request; 0 keeps the SDK default
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// Client implements interfaces.ChatCompleter
type Client struct {
	api openai.Client
}

// NewClient creates a chat-completions client
func NewClient(cfg Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{api: openai.NewClient(opts...)}
}

// Complete sends one chat completion and returns the first choice's text
func (c *Client) Complete(ctx context.Context, req interfaces.ChatRequest) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			userMessage(req.UserText, req.ImageDataURI),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", toTransportError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// userMessage builds a plain text message, or a text+image part list when
// an image data URI is present
func userMessage(text, imageDataURI string) openai.ChatCompletionMessageParamUnion {
	if imageDataURI == "" {
		return openai.UserMessage(text)
	}

	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
					{
						OfText: &openai.ChatCompletionContentPartTextParam{
							Text: text,
						},
					},
					{
						OfImageURL: &openai.ChatCompletionContentPartImageParam{
							ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
								URL: imageDataURI,
							},
						},
					},
				},
			},
		},
	}
}

func toTransportError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = err.Error()
		}
		return &coreerrors.TransportError{
			API:        apiName,
			StatusCode: apiErr.StatusCode,
			Message:    message,
			Err:        err,
		}
	}
	return &coreerrors.TransportError{API: apiName, Message: err.Error(), Err: err}
}
