// Package gateway forwards a single user prompt to an upstream chat
// model using one of a small set of fixed presets and returns the
// generated text.
package gateway

import (
	"context"

	"github.com/ncecere/prompt-gateway/provider"
)

// Role constants for chat messages.
// These match the roles used by OpenAI-style chat endpoints.
const (
	RoleUser   = "user"
	RoleSystem = "system"
)

// Mode names understood by the gateway.
const (
	// ModeChat selects the chat preset. It is the default mode.
	ModeChat = "chat"
	// ModeCompletion selects the completion preset. Any mode other
	// than ModeChat resolves to it.
	ModeCompletion = "completion"
)

// Aliases to provider-level types so callers can work through the
// gateway package while providers implement the shared interfaces.
type (
	// Message is a single chat message with role and content.
	Message = provider.Message
	// LanguageModel is a provider-agnostic chat-oriented model.
	LanguageModel = provider.LanguageModel
)

// Preset is a fixed model/parameter combination selected by mode.
type Preset struct {
	// Mode is the name the preset is registered under.
	Mode string
	// Model is the upstream model identifier.
	Model string
	// SystemPrompt, if non-empty, is sent as a leading system message.
	SystemPrompt string
	// Settings holds optional generation parameters. Nil means the
	// provider defaults are used.
	Settings *CallSettings
}

// Validate checks that the preset is usable.
func (p Preset) Validate() error {
	if p.Mode == "" {
		return &InvalidArgumentError{Parameter: "mode", Value: p.Mode, Message: "must not be empty"}
	}
	if p.Model == "" {
		return &InvalidArgumentError{Parameter: "model", Value: p.Model, Message: "must not be empty"}
	}
	return p.Settings.Validate()
}

// ChatPreset returns the default chat preset: a low-cost model behind
// a fixed helpful-assistant system prompt, provider-default sampling.
func ChatPreset() Preset {
	return Preset{
		Mode:         ModeChat,
		Model:        "gpt-4o-mini",
		SystemPrompt: "You are a helpful assistant.",
	}
}

// CompletionPreset returns the completion preset: no system prompt,
// output capped at 150 tokens, temperature 0.7.
func CompletionPreset() Preset {
	temperature := 0.7
	maxTokens := 150
	return Preset{
		Mode:  ModeCompletion,
		Model: "gpt-3.5-turbo",
		Settings: &CallSettings{
			Temperature: &temperature,
			MaxTokens:   &maxTokens,
		},
	}
}

// Call is a single completion call against the upstream provider.
type Call struct {
	// Model is the upstream model identifier.
	Model string
	// SystemPrompt is optional; empty means no system message.
	SystemPrompt string
	// Prompt is the user-supplied text.
	Prompt string
	// Settings holds optional generation parameters.
	Settings *CallSettings
}

// Messages returns the chat messages for the call: the system prompt,
// when set, followed by the user prompt.
func (c Call) Messages() []Message {
	msgs := make([]Message, 0, 2)
	if c.SystemPrompt != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: c.SystemPrompt})
	}
	return append(msgs, Message{Role: RoleUser, Content: c.Prompt})
}

// NewCall builds a Call for prompt from a preset.
func NewCall(p Preset, prompt string) Call {
	return Call{
		Model:        p.Model,
		SystemPrompt: p.SystemPrompt,
		Prompt:       prompt,
		Settings:     p.Settings,
	}
}

// Completer produces the text for a single Call.
//
// Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, call Call) (string, error)
}

// CompleterFunc adapts a plain function to the Completer interface.
type CompleterFunc func(ctx context.Context, call Call) (string, error)

// Complete implements Completer.
func (f CompleterFunc) Complete(ctx context.Context, call Call) (string, error) {
	return f(ctx, call)
}

// ModelCompleter implements Completer on top of a provider
// LanguageModel. The model identifier of each Call is passed through
// to the provider request.
type ModelCompleter struct {
	Model LanguageModel
}

// Ensure ModelCompleter implements Completer.
var _ Completer = (*ModelCompleter)(nil)

// NewModelCompleter returns a Completer backed by model.
func NewModelCompleter(model LanguageModel) *ModelCompleter {
	return &ModelCompleter{Model: model}
}

// Complete builds the message list for call, applies its settings and
// returns the text of the first choice.
//
// Errors:
//   - ErrMissingModel if the completer has no LanguageModel.
//   - *UpstreamError wrapping any error returned by the provider.
func (m *ModelCompleter) Complete(ctx context.Context, call Call) (string, error) {
	if m == nil || m.Model == nil {
		return "", ErrMissingModel
	}

	req := &provider.LanguageModelRequest{
		Model:    call.Model,
		Messages: call.Messages(),
	}
	call.Settings.ApplyTo(req)

	res, err := m.Model.Generate(ctx, req)
	if err != nil {
		return "", &UpstreamError{Model: call.Model, Err: err}
	}
	return res.Text, nil
}
