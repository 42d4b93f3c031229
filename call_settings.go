package gateway

import "github.com/ncecere/prompt-gateway/provider"

// CallSettings holds the optional sampling parameters of a preset.
// Nil fields are left to the provider.
type CallSettings struct {
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Stop        []string
}

// ApplyTo copies the set fields into req. A nil receiver is a no-op.
func (s *CallSettings) ApplyTo(req *provider.LanguageModelRequest) {
	if s == nil {
		return
	}
	if s.Temperature != nil {
		req.Temperature = s.Temperature
	}
	if s.TopP != nil {
		req.TopP = s.TopP
	}
	if s.MaxTokens != nil {
		req.MaxTokens = s.MaxTokens
	}
	if len(s.Stop) > 0 {
		req.Stop = s.Stop
	}
}
