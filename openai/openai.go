// Package openai talks to OpenAI-compatible chat completions endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ncecere/prompt-gateway/provider"
	"github.com/ncecere/prompt-gateway/providerutil"
)

// DefaultBaseURL is the public OpenAI API root.
const DefaultBaseURL = "https://api.openai.com"

// ErrNoChoices is returned when the API answers 2xx with an empty
// choices list.
var ErrNoChoices = errors.New("openai: response contained no choices")

// Client holds connection settings shared by every model it hands out.
// It carries no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient provider.HTTPClient
	headers    http.Header
}

// NewClient validates opts and returns a Client. An empty BaseURL
// selects DefaultBaseURL. An empty APIKey is accepted; the upstream
// rejects it on the first call.
func NewClient(opts provider.ClientOptions) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("openai: base URL %q must start with http:// or https://", base)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = providerutil.DefaultHTTPClient()
	}
	return &Client{baseURL: base, apiKey: opts.APIKey, httpClient: hc, headers: opts.Headers}, nil
}

// WithHTTPTimeout returns an HTTP client whose requests are bounded by d.
func WithHTTPTimeout(d time.Duration) provider.HTTPClient {
	return &http.Client{Timeout: d}
}

func (c *Client) chatCompletionsURL() string {
	if strings.HasSuffix(c.baseURL, "/v1") {
		return c.baseURL + "/chat/completions"
	}
	return c.baseURL + "/v1/chat/completions"
}

// post sends payload as JSON to url and decodes the reply into out.
func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("openai: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	for name, values := range c.headers {
		for _, v := range values {
			if v != "" {
				req.Header.Add(name, v)
			}
		}
	}
	// Set after the custom headers so callers cannot override them.
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	return providerutil.ReadJSON(resp, out)
}

// ChatModel returns a LanguageModel bound to the given model ID. A
// request that names its own model overrides it.
func (c *Client) ChatModel(model string) provider.LanguageModel {
	return &chatModel{client: c, model: model}
}

type chatModel struct {
	client *Client
	model  string
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []wireMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		FinishReason string      `json:"finish_reason"`
		Message      wireMessage `json:"message"`
	} `json:"choices"`
}

func (m *chatModel) Generate(ctx context.Context, req *provider.LanguageModelRequest) (*provider.LanguageModelResponse, error) {
	payload := chatCompletionRequest{
		Model:       m.model,
		Messages:    make([]wireMessage, len(req.Messages)),
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
		Stop:        req.Stop,
	}
	if req.Model != "" {
		payload.Model = req.Model
	}
	for i, msg := range req.Messages {
		payload.Messages[i] = wireMessage{Role: msg.Role, Content: msg.Content}
	}

	var out chatCompletionResponse
	if err := m.client.post(ctx, m.client.chatCompletionsURL(), payload, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, ErrNoChoices
	}
	first := out.Choices[0]
	return &provider.LanguageModelResponse{Text: first.Message.Content, StopReason: first.FinishReason}, nil
}
