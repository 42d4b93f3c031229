package providerutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response body is kept in
// an HTTPStatusError.
const maxErrorBody = 8 * 1024

// HTTPStatusError is returned by ReadJSON when the provider answers
// with a non-2xx status.
type HTTPStatusError struct {
	// StatusCode is the HTTP status returned by the provider.
	StatusCode int
	// Body is the (truncated) response body, usually a JSON error
	// document from the provider.
	Body string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("provider: http status %d: %s", e.StatusCode, e.Body)
}

// ReadJSON decodes a JSON response body into v and closes the body.
//
// If the response status code is not in the 2xx range, ReadJSON
// returns an *HTTPStatusError whose message has the form:
//
//	provider: http status <code>: <truncated-body>
func ReadJSON(resp *http.Response, v any) error {
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("provider: decode response: %w", err)
	}
	return nil
}

// DefaultHTTPClient returns the default HTTP client used when none is provided.
func DefaultHTTPClient() *http.Client {
	return http.DefaultClient
}
