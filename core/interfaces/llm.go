// ABOUTME: Model endpoint port used by the analysis service
// ABOUTME: One chat-completion call with an optional inline image

package interfaces

import "context"

// ChatRequest describes a single chat-completion call
type ChatRequest struct {
	// Model is the model identifier
	Model string

	// SystemPrompt is sent as the system message
	SystemPrompt string

	// UserText is the text of the user message
	UserText string

	// ImageDataURI, when set, is attached to the user message as an image part
	// (data:<mime>;base64,<payload>)
	ImageDataURI string

	// Temperature is the sampling temperature
	Temperature float64

	// MaxTokens is the completion token ceiling
	MaxTokens int
}

// ChatCompleter sends chat-completion requests to a hosted model.
// Implementations return the raw text of the first choice. Transport and
// authentication failures are returned as errors and never retried by callers.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
