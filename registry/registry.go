package registry

import (
	"fmt"
	"sync"

	gateway "github.com/ncecere/prompt-gateway"
)

// Registry maps request modes to presets.
type Registry interface {
	// Preset returns the preset registered under exactly mode.
	// If no such preset exists, a *NoSuchPresetError is returned.
	Preset(mode string) (gateway.Preset, error)

	// Resolve returns the preset for a request that carries a mode.
	// A mode with no registered preset, the empty string included,
	// selects the fallback mode.
	Resolve(mode string) (gateway.Preset, error)

	// DefaultPreset returns the preset for a request without a mode.
	DefaultPreset() (gateway.Preset, error)

	// Register registers or replaces a preset under p.Mode.
	Register(p gateway.Preset) error
}

// NoSuchPresetError indicates that a requested mode has no preset.
type NoSuchPresetError struct {
	// Mode is the mode that was requested.
	Mode string
}

func (e *NoSuchPresetError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("registry: no preset for mode %q", e.Mode)
}

// InMemoryRegistry is a concurrency-safe in-memory implementation of
// Registry. Presets are usually registered once at startup and then
// read by every request.
type InMemoryRegistry struct {
	mu sync.RWMutex

	presets      map[string]gateway.Preset
	defaultMode  string
	fallbackMode string
}

// Ensure InMemoryRegistry implements Registry.
var _ Registry = (*InMemoryRegistry)(nil)

// NewInMemoryRegistry creates an empty registry. defaultMode is used
// for requests without a mode, fallbackMode for unknown modes.
func NewInMemoryRegistry(defaultMode, fallbackMode string) *InMemoryRegistry {
	return &InMemoryRegistry{
		presets:      make(map[string]gateway.Preset),
		defaultMode:  defaultMode,
		fallbackMode: fallbackMode,
	}
}

// Default returns a registry holding the chat and completion presets.
// Requests without a mode use chat; any mode other than "chat" uses
// completion. It panics if a built-in preset fails validation.
func Default() *InMemoryRegistry {
	r := NewInMemoryRegistry(gateway.ModeChat, gateway.ModeCompletion)
	r.MustRegister(gateway.ChatPreset())
	r.MustRegister(gateway.CompletionPreset())
	return r
}

// Preset implements Registry.Preset.
func (r *InMemoryRegistry) Preset(mode string) (gateway.Preset, error) {
	r.mu.RLock()
	p, ok := r.presets[mode]
	r.mu.RUnlock()
	if !ok {
		return gateway.Preset{}, &NoSuchPresetError{Mode: mode}
	}
	return p, nil
}

// Resolve implements Registry.Resolve.
func (r *InMemoryRegistry) Resolve(mode string) (gateway.Preset, error) {
	r.mu.RLock()
	p, ok := r.presets[mode]
	if !ok {
		p, ok = r.presets[r.fallbackMode]
	}
	r.mu.RUnlock()

	if !ok {
		return gateway.Preset{}, &NoSuchPresetError{Mode: mode}
	}
	return p, nil
}

// DefaultPreset implements Registry.DefaultPreset.
func (r *InMemoryRegistry) DefaultPreset() (gateway.Preset, error) {
	return r.Preset(r.defaultMode)
}

// Register implements Registry.Register. Invalid presets are rejected.
func (r *InMemoryRegistry) Register(p gateway.Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Mode] = p
	return nil
}

// MustRegister is like Register but panics if p is invalid.
func (r *InMemoryRegistry) MustRegister(p gateway.Preset) {
	if err := r.Register(p); err != nil {
		panic(fmt.Sprintf("registry: register %q: %v", p.Mode, err))
	}
}

// Modes returns the registered mode names in no particular order.
func (r *InMemoryRegistry) Modes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	modes := make([]string, 0, len(r.presets))
	for m := range r.presets {
		modes = append(modes, m)
	}
	return modes
}
