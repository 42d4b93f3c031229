package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gateway "github.com/ncecere/prompt-gateway"
)

func TestDefaultResolve(t *testing.T) {
	r := Default()

	tests := []struct {
		mode      string
		wantModel string
	}{
		{"chat", "gpt-4o-mini"},
		{"", "gpt-3.5-turbo"},
		{"completion", "gpt-3.5-turbo"},
		{"invalid_mode", "gpt-3.5-turbo"},
		{"Chat", "gpt-3.5-turbo"},
	}
	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			p, err := r.Resolve(tc.mode)
			require.NoError(t, err)
			assert.Equal(t, tc.wantModel, p.Model)
		})
	}
}

func TestDefaultPreset(t *testing.T) {
	p, err := Default().DefaultPreset()
	require.NoError(t, err)
	assert.Equal(t, gateway.ChatPreset(), p)

	_, err = NewInMemoryRegistry("missing", gateway.ModeCompletion).DefaultPreset()
	var noSuch *NoSuchPresetError
	require.True(t, errors.As(err, &noSuch))
	assert.Equal(t, "missing", noSuch.Mode)
}

func TestMustRegisterPanicsOnInvalidPreset(t *testing.T) {
	r := NewInMemoryRegistry(gateway.ModeChat, gateway.ModeCompletion)
	assert.PanicsWithValue(t,
		`registry: register "chat": gateway: invalid argument for parameter model: must not be empty`,
		func() { r.MustRegister(gateway.Preset{Mode: gateway.ModeChat}) })
	assert.NotPanics(t, func() { r.MustRegister(gateway.ChatPreset()) })
}

func TestPresetExactLookup(t *testing.T) {
	r := Default()

	p, err := r.Preset("chat")
	require.NoError(t, err)
	assert.Equal(t, "You are a helpful assistant.", p.SystemPrompt)

	_, err = r.Preset("invalid_mode")
	var noSuch *NoSuchPresetError
	require.True(t, errors.As(err, &noSuch))
	assert.Equal(t, "invalid_mode", noSuch.Mode)
	assert.Contains(t, err.Error(), `"invalid_mode"`)
}

func TestResolveWithoutFallback(t *testing.T) {
	r := NewInMemoryRegistry(gateway.ModeChat, "missing")
	require.NoError(t, r.Register(gateway.ChatPreset()))

	_, err := r.Resolve("other")
	var noSuch *NoSuchPresetError
	assert.True(t, errors.As(err, &noSuch))
}

func TestRegisterRejectsInvalidPreset(t *testing.T) {
	r := NewInMemoryRegistry(gateway.ModeChat, gateway.ModeCompletion)
	err := r.Register(gateway.Preset{Mode: "chat"})
	var argErr *gateway.InvalidArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Empty(t, r.Modes())
}

func TestRegisterReplaces(t *testing.T) {
	r := Default()
	require.NoError(t, r.Register(gateway.Preset{Mode: gateway.ModeChat, Model: "gpt-4o"}))

	p, err := r.DefaultPreset()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.Model)
	assert.ElementsMatch(t, []string{"chat", "completion"}, r.Modes())
}
