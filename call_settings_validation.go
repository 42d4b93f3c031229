package gateway

// Accepted ranges, matching what OpenAI-style chat APIs accept.
const (
	minTemperature = 0.0
	maxTemperature = 2.0
)

// Validate reports the first out-of-range field as an
// *InvalidArgumentError. Stop sequences are not checked; providers
// impose their own limits.
func (s *CallSettings) Validate() error {
	if s == nil {
		return nil
	}
	if t := s.Temperature; t != nil && (*t < minTemperature || *t > maxTemperature) {
		return &InvalidArgumentError{Parameter: "temperature", Value: *t, Message: "must be between 0 and 2"}
	}
	if p := s.TopP; p != nil && (*p <= 0 || *p > 1) {
		return &InvalidArgumentError{Parameter: "topP", Value: *p, Message: "must be in the range (0, 1]"}
	}
	if n := s.MaxTokens; n != nil && *n <= 0 {
		return &InvalidArgumentError{Parameter: "maxTokens", Value: *n, Message: "must be greater than 0"}
	}
	return nil
}

// NewCallSettings builds validated CallSettings.
func NewCallSettings(temperature *float64, topP *float64, maxTokens *int, stop []string) (*CallSettings, error) {
	s := &CallSettings{
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Stop:        stop,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
