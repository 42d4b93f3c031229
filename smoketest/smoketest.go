// Package smoketest exercises a running gateway over HTTP: one chat
// request, one completion request and one invalid request.
package smoketest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DefaultBaseURL is where a locally started gateway listens.
const DefaultBaseURL = "http://localhost:5000"

// TestPrompt is the prompt sent by the chat and completion cases.
const TestPrompt = "Write a short poem about artificial intelligence"

// PlaceholderAPIKey is the value shipped in example env files.
const PlaceholderAPIKey = "your-openai-key-here"

// Case is a single request against POST /generate.
type Case struct {
	Name    string
	Payload map[string]string
	// WantStatus is the expected HTTP status.
	WantStatus int
	// WantResponse requires a non-empty "response" field.
	WantResponse bool
}

// Result is the outcome of running a Case.
type Result struct {
	Case   string
	Passed bool
	Status int
	// Detail is a response excerpt on success or the failure reason.
	Detail string
}

// DefaultCases returns the chat, completion and error-handling cases.
func DefaultCases() []Case {
	return []Case{
		{
			Name:         "chat",
			Payload:      map[string]string{"prompt": TestPrompt, "mode": "chat"},
			WantStatus:   fiber.StatusOK,
			WantResponse: true,
		},
		{
			Name:         "completion",
			Payload:      map[string]string{"prompt": TestPrompt, "mode": "completion"},
			WantStatus:   fiber.StatusOK,
			WantResponse: true,
		},
		{
			Name:       "error handling",
			Payload:    map[string]string{"prompt": "", "mode": "invalid_mode"},
			WantStatus: fiber.StatusBadRequest,
		},
	}
}

// CheckAPIKey reports whether key looks like a real credential.
func CheckAPIKey(key string) error {
	if key == "" || key == PlaceholderAPIKey {
		return fmt.Errorf("smoketest: set OPENAI_API_KEY (https://platform.openai.com/api-keys)")
	}
	return nil
}

type generateResponse struct {
	Response string `json:"response"`
}

// Runner sends cases to a gateway.
type Runner struct {
	BaseURL string
	Timeout time.Duration
}

// Run executes the cases in order and returns one Result per case.
func (r *Runner) Run(cases []Case) []Result {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		results = append(results, r.runCase(c))
	}
	return results
}

func (r *Runner) runCase(c Case) Result {
	res := Result{Case: c.Name}
	url := strings.TrimRight(r.BaseURL, "/") + "/generate"

	a := fiber.Post(url)
	if r.Timeout > 0 {
		a.Timeout(r.Timeout)
	}
	a.JSON(c.Payload)
	if err := a.Parse(); err != nil {
		res.Detail = err.Error()
		return res
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		res.Detail = fmt.Sprintf("connection failed; is the gateway running on %s? (%v)", r.BaseURL, errs[0])
		return res
	}
	res.Status = code

	if code != c.WantStatus {
		res.Detail = fmt.Sprintf("expected status %d, got %d: %s", c.WantStatus, code, body)
		return res
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		res.Detail = fmt.Sprintf("invalid JSON body: %v", err)
		return res
	}
	if c.WantResponse && out.Response == "" {
		res.Detail = "empty response field"
		return res
	}

	res.Passed = true
	res.Detail = excerpt(out.Response, 100)
	return res
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
