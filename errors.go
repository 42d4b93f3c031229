package gateway

import "errors"

// ErrMissingModel is returned when a ModelCompleter has no
// LanguageModel to call.
var ErrMissingModel = errors.New("gateway: missing LanguageModel")

// UpstreamError wraps any failure of the upstream provider call:
// transport errors, non-2xx statuses, undecodable or empty responses.
//
// Its message is the underlying error's message so callers can relay
// it to clients unchanged.
type UpstreamError struct {
	// Model is the upstream model the call was made against.
	Model string
	// Err is the provider error.
	Err error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return "upstream call failed"
	}
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvalidArgumentError indicates that an argument is invalid. It is
// used for validation of presets and call settings.
type InvalidArgumentError struct {
	// Parameter is the name of the invalid parameter.
	Parameter string
	// Value is the offending value.
	Value any
	// Message describes why the value is considered invalid.
	Message string
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "gateway: invalid argument for parameter " + e.Parameter + ": " + e.Message
}
