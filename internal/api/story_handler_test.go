package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/story-api/internal/api"
	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/mocks"
	"github.com/phrazzld/story-api/internal/platform/logger"
	"github.com/phrazzld/story-api/internal/service"
	"github.com/phrazzld/story-api/internal/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHandler wires a StoryHandler to generator through the real service.
func newHandler(t *testing.T, generator generation.Generator, log *slog.Logger) *api.StoryHandler {
	t.Helper()

	svc, err := service.NewStoryService(generator, log)
	require.NoError(t, err)
	return api.NewStoryHandler(svc, log)
}

func postStory(t *testing.T, handler *api.StoryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/generate-story", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.GenerateStory(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestStoryHandler_GenerateStory(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		generator         *mocks.MockGenerator
		expectedStatus    int
		expectedBody      map[string]interface{}
		expectedText      string
		expectedMaxTokens int
	}{
		{
			name:              "success with explicit max_tokens",
			body:              `{"prompt":"a dragon","max_tokens":100}`,
			generator:         mocks.NewMockGeneratorWithText("Once upon a time..."),
			expectedStatus:    http.StatusOK,
			expectedBody:      map[string]interface{}{"story": "Once upon a time..."},
			expectedText:      "Write a creative story based on: a dragon",
			expectedMaxTokens: 100,
		},
		{
			name:              "upstream rejection relayed verbatim",
			body:              `{"prompt":"x"}`,
			generator:         mocks.MockGeneratorWithUpstreamRejection(http.StatusTooManyRequests, "rate limited"),
			expectedStatus:    http.StatusOK,
			expectedBody:      map[string]interface{}{"error": "rate limited"},
			expectedText:      "Write a creative story based on: x",
			expectedMaxTokens: story.DefaultMaxTokens,
		},
		{
			name:              "empty prompt accepted",
			body:              `{"prompt":""}`,
			generator:         mocks.NewMockGeneratorWithText(""),
			expectedStatus:    http.StatusOK,
			expectedBody:      map[string]interface{}{"story": ""},
			expectedText:      "Write a creative story based on: ",
			expectedMaxTokens: story.DefaultMaxTokens,
		},
		{
			name:              "zero max_tokens passed through",
			body:              `{"prompt":"p","max_tokens":0}`,
			generator:         mocks.NewMockGeneratorWithText("s"),
			expectedStatus:    http.StatusOK,
			expectedBody:      map[string]interface{}{"story": "s"},
			expectedText:      "Write a creative story based on: p",
			expectedMaxTokens: 0,
		},
		{
			name:              "negative max_tokens passed through",
			body:              `{"prompt":"p","max_tokens":-7}`,
			generator:         mocks.NewMockGeneratorWithText("s"),
			expectedStatus:    http.StatusOK,
			expectedBody:      map[string]interface{}{"story": "s"},
			expectedText:      "Write a creative story based on: p",
			expectedMaxTokens: -7,
		},
		{
			name:              "unknown fields ignored",
			body:              `{"prompt":"p","temperature":0.3}`,
			generator:         mocks.NewMockGeneratorWithText("s"),
			expectedStatus:    http.StatusOK,
			expectedBody:      map[string]interface{}{"story": "s"},
			expectedText:      "Write a creative story based on: p",
			expectedMaxTokens: story.DefaultMaxTokens,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, log := logger.SetupTestLogger(t)
			handler := newHandler(t, tc.generator, log)

			rec := postStory(t, handler, tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectedBody, decodeBody(t, rec))

			text, maxTokens, ok := tc.generator.LastCall()
			require.True(t, ok)
			assert.Equal(t, tc.expectedText, text)
			assert.Equal(t, tc.expectedMaxTokens, maxTokens)
		})
	}
}

func TestStoryHandler_InvalidInput(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		expectedMessage string
	}{
		{"missing prompt", `{"max_tokens":10}`, "Invalid prompt: required field"},
		{"null prompt", `{"prompt":null}`, "Invalid prompt: required field"},
		{"prompt wrong type", `{"prompt":7}`, "Invalid prompt: expected string"},
		{"max_tokens wrong type", `{"prompt":"p","max_tokens":"many"}`, "Invalid max_tokens: expected int"},
		{"max_tokens fractional", `{"prompt":"p","max_tokens":1.5}`, "Invalid max_tokens: expected int"},
		{"malformed json", `{"prompt":`, "Invalid request format"},
		{"empty body", ``, "Request body is empty"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, log := logger.SetupTestLogger(t)
			generator := mocks.NewMockGeneratorWithText("unused")
			handler := newHandler(t, generator, log)

			rec := postStory(t, handler, tc.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.expectedMessage, body["error"])
			assert.Equal(t, 0, generator.CallCount(), "upstream must not be called for invalid input")
		})
	}
}

func TestStoryHandler_UpstreamCallFailures(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "transport failure",
			err: fmt.Errorf("%w: post https://upstream.test/v1beta/models/m:generateContent?key=[REDACTED_KEY]: connection refused",
				generation.ErrTransportFailure),
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "Story generator unavailable",
		},
		{
			name:            "invalid response",
			err:             fmt.Errorf("%w: body is not JSON", generation.ErrInvalidResponse),
			expectedStatus:  http.StatusBadGateway,
			expectedMessage: "Invalid response from story generator",
		},
		{
			name:            "deadline exceeded",
			err:             fmt.Errorf("%w: post: %w", generation.ErrTransportFailure, context.DeadlineExceeded),
			expectedStatus:  http.StatusGatewayTimeout,
			expectedMessage: "Story generation timed out",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logBuf, log := logger.SetupTestLogger(t)
			handler := newHandler(t, mocks.NewMockGeneratorWithError(tc.err), log)

			rec := postStory(t, handler, `{"prompt":"p"}`)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.expectedMessage, body["error"])
			assert.NotContains(t, body, "story")

			entries, err := logBuf.GetLogEntries()
			require.NoError(t, err)
			var found bool
			for _, entry := range entries {
				if entry["msg"] == "API error response" {
					found = true
					assert.Equal(t, "ERROR", entry["level"])
					assert.Equal(t, float64(tc.expectedStatus), entry["status_code"])
				}
			}
			assert.True(t, found, "expected API error response log entry")
		})
	}
}

func TestStoryHandler_Idempotent(t *testing.T) {
	_, log := logger.SetupTestLogger(t)
	handler := newHandler(t, mocks.NewMockGeneratorWithText("same story"), log)

	first := postStory(t, handler, `{"prompt":"a dragon"}`)
	second := postStory(t, handler, `{"prompt":"a dragon"}`)

	assert.Equal(t, first.Code, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}
