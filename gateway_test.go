package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncecere/prompt-gateway/provider"
)

type fakeModel struct {
	req  *provider.LanguageModelRequest
	text string
	err  error
}

func (f *fakeModel) Generate(ctx context.Context, req *provider.LanguageModelRequest) (*provider.LanguageModelResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &provider.LanguageModelResponse{Text: f.text, StopReason: "stop"}, nil
}

func TestModelCompleter_ChatPreset(t *testing.T) {
	model := &fakeModel{text: "Roses are red..."}
	c := NewModelCompleter(model)

	text, err := c.Complete(context.Background(), NewCall(ChatPreset(), "Write a short poem about artificial intelligence"))
	require.NoError(t, err)
	assert.Equal(t, "Roses are red...", text)

	require.NotNil(t, model.req)
	assert.Equal(t, "gpt-4o-mini", model.req.Model)
	assert.Equal(t, []provider.Message{
		{Role: RoleSystem, Content: "You are a helpful assistant."},
		{Role: RoleUser, Content: "Write a short poem about artificial intelligence"},
	}, model.req.Messages)
	assert.Nil(t, model.req.Temperature)
	assert.Nil(t, model.req.MaxTokens)
}

func TestModelCompleter_CompletionPreset(t *testing.T) {
	model := &fakeModel{text: "ok"}
	c := NewModelCompleter(model)

	_, err := c.Complete(context.Background(), NewCall(CompletionPreset(), "hello"))
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo", model.req.Model)
	assert.Equal(t, []provider.Message{{Role: RoleUser, Content: "hello"}}, model.req.Messages)
	require.NotNil(t, model.req.Temperature)
	assert.Equal(t, 0.7, *model.req.Temperature)
	require.NotNil(t, model.req.MaxTokens)
	assert.Equal(t, 150, *model.req.MaxTokens)
	assert.Nil(t, model.req.TopP)
}

func TestModelCompleter_WrapsProviderError(t *testing.T) {
	providerErr := errors.New("rate limit exceeded")
	c := NewModelCompleter(&fakeModel{err: providerErr})

	_, err := c.Complete(context.Background(), NewCall(ChatPreset(), "hi"))
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "gpt-4o-mini", upstreamErr.Model)
	assert.ErrorIs(t, err, providerErr)
	assert.Equal(t, "rate limit exceeded", err.Error())
}

func TestModelCompleter_MissingModel(t *testing.T) {
	_, err := NewModelCompleter(nil).Complete(context.Background(), NewCall(ChatPreset(), "hi"))
	assert.ErrorIs(t, err, ErrMissingModel)
}

func TestCompleterFunc(t *testing.T) {
	var got Call
	c := CompleterFunc(func(ctx context.Context, call Call) (string, error) {
		got = call
		return "done", nil
	})

	text, err := c.Complete(context.Background(), NewCall(CompletionPreset(), "p"))
	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, "p", got.Prompt)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
}

func TestPresetValidate(t *testing.T) {
	require.NoError(t, ChatPreset().Validate())
	require.NoError(t, CompletionPreset().Validate())

	tooHot := 2.5
	tests := []struct {
		name   string
		preset Preset
		param  string
	}{
		{"missing mode", Preset{Model: "m"}, "mode"},
		{"missing model", Preset{Mode: "chat"}, "model"},
		{"bad temperature", Preset{Mode: "chat", Model: "m", Settings: &CallSettings{Temperature: &tooHot}}, "temperature"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.preset.Validate()
			var argErr *InvalidArgumentError
			require.True(t, errors.As(err, &argErr), "expected InvalidArgumentError, got %v", err)
			assert.Equal(t, tc.param, argErr.Parameter)
		})
	}
}

func TestUpstreamErrorNilSafe(t *testing.T) {
	var e *UpstreamError
	assert.Equal(t, "<nil>", e.Error())
	assert.Nil(t, e.Unwrap())
	assert.Equal(t, "upstream call failed", (&UpstreamError{}).Error())
}
