package provider

import (
	"context"
	"net/http"
)

// HTTPClient is the minimal interface required from an HTTP client.
// It matches the Do method on *http.Client and allows callers to
// substitute custom clients or test doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOptions are shared options for provider clients.
type ClientOptions struct {
	// BaseURL is the root URL of the provider API.
	BaseURL string
	// APIKey is the API key or bearer token used for authentication.
	// An empty key is passed through as-is; the provider rejects it
	// on the first call.
	APIKey string
	// HTTPClient is the underlying HTTP client. If nil, a default
	// client is used.
	HTTPClient HTTPClient
	// Headers contains additional HTTP headers attached to every
	// outbound request. Required headers set by the provider win.
	Headers http.Header
}

// LanguageModel is the provider-facing interface for chat models.
// Implementations map LanguageModelRequest values to the provider's
// chat completions API.
type LanguageModel interface {
	Generate(ctx context.Context, req *LanguageModelRequest) (*LanguageModelResponse, error)
}

// LanguageModelRequest is a provider-level request close to the wire
// format used by chat APIs. Nil pointers mean "provider default" and
// are not sent.
type LanguageModelRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Stop        []string
}

// Message is a provider-level chat message.
type Message struct {
	Role    string
	Content string
}

// LanguageModelResponse is a provider-level response from a chat model.
// Text is the content of the first returned choice.
type LanguageModelResponse struct {
	Text       string
	StopReason string
}
