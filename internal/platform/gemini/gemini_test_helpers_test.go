package gemini_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/story-api/internal/config"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key-123"

// capturedRequest records what the fake upstream received.
type capturedRequest struct {
	Method      string
	Path        string
	Key         string
	GoogAPIKey  string
	ContentType string
	Body        []byte
}

// fakeUpstream is an httptest server standing in for the Gemini API.
type fakeUpstream struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

// newFakeUpstream starts a server that records each request and answers with
// status and body.
func newFakeUpstream(t *testing.T, status int, body string) *fakeUpstream {
	t.Helper()

	f := &fakeUpstream{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.mu.Lock()
		f.requests = append(f.requests, capturedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			Key:         r.URL.Query().Get("key"),
			GoogAPIKey:  r.Header.Get("x-goog-api-key"),
			ContentType: r.Header.Get("Content-Type"),
			Body:        data,
		})
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)

	return f
}

func (f *fakeUpstream) Requests() []capturedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]capturedRequest(nil), f.requests...)
}

// testLLMConfig points the LLM configuration at baseURL.
func testLLMConfig(baseURL, backend string) config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:          testAPIKey,
		ModelName:             "gemini-2.0-flash",
		BaseURL:               baseURL + "/v1beta",
		Backend:               backend,
		RequestTimeoutSeconds: 5,
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testHTTPClient() *http.Client {
	return &http.Client{Timeout: 5 * time.Second}
}

// successBody builds a generateContent response carrying text.
func successBody(t *testing.T, text string) string {
	t.Helper()

	body := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	data, err := json.Marshal(body)
	require.NoError(t, err)
	return string(data)
}
