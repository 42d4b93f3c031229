package smoketest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeGateway(t *testing.T, chatStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/generate" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case req["prompt"] == "":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"response": "No prompt provided"}`))
		case req["mode"] == "chat":
			w.WriteHeader(chatStatus)
			_, _ = w.Write([]byte(`{"response": "` + strings.Repeat("a", 150) + `"}`))
		default:
			_, _ = w.Write([]byte(`{"response": "Roses are red..."}`))
		}
	}))
}

func TestRunAllPass(t *testing.T) {
	ts := fakeGateway(t, http.StatusOK)
	defer ts.Close()

	r := &Runner{BaseURL: ts.URL + "/", Timeout: 5 * time.Second}
	results := r.Run(DefaultCases())

	require.Len(t, results, 3)
	for _, res := range results {
		assert.True(t, res.Passed, "%s: %s", res.Case, res.Detail)
	}
	assert.True(t, AllPassed(results))
	assert.Equal(t, strings.Repeat("a", 100)+"...", results[0].Detail)
	assert.Equal(t, "Roses are red...", results[1].Detail)
	assert.Equal(t, http.StatusBadRequest, results[2].Status)
}

func TestRunReportsStatusMismatch(t *testing.T) {
	ts := fakeGateway(t, http.StatusInternalServerError)
	defer ts.Close()

	results := (&Runner{BaseURL: ts.URL}).Run(DefaultCases())

	require.Len(t, results, 3)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Detail, "expected status 200, got 500")
	assert.True(t, results[1].Passed)
	assert.False(t, AllPassed(results))
}

func TestRunConnectionFailure(t *testing.T) {
	ts := fakeGateway(t, http.StatusOK)
	url := ts.URL
	ts.Close()

	results := (&Runner{BaseURL: url, Timeout: time.Second}).Run(DefaultCases()[:1])

	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Detail, "connection failed")
}

func TestCheckAPIKey(t *testing.T) {
	assert.Error(t, CheckAPIKey(""))
	assert.Error(t, CheckAPIKey(PlaceholderAPIKey))
	assert.NoError(t, CheckAPIKey("sk-real"))
}
