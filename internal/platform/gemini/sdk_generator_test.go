package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSDKGenerator(t *testing.T, baseURL string) *gemini.SDKGenerator {
	t.Helper()
	g, err := gemini.NewSDKGenerator(
		context.Background(),
		newTestLogger(),
		testLLMConfig(baseURL, gemini.BackendSDK),
		testHTTPClient(),
	)
	require.NoError(t, err)
	return g
}

func TestSDKGenerator_Success(t *testing.T) {
	t.Parallel()

	upstream := newFakeUpstream(t, http.StatusOK, successBody(t, "Once upon a time..."))
	g := newSDKGenerator(t, upstream.URL)

	text, err := g.Generate(context.Background(), "Write a creative story based on: a dragon", 100)

	require.NoError(t, err)
	assert.Equal(t, "Once upon a time...", text)

	requests := upstream.Requests()
	require.Len(t, requests, 1)
	assert.True(t, strings.HasSuffix(requests[0].Path, "/models/gemini-2.0-flash:generateContent"),
		"unexpected path %s", requests[0].Path)
	assert.Equal(t, testAPIKey, requests[0].GoogAPIKey)
	assert.Contains(t, string(requests[0].Body), "Write a creative story based on: a dragon")
}

func TestSDKGenerator_EmptyCandidates(t *testing.T) {
	t.Parallel()

	upstream := newFakeUpstream(t, http.StatusOK, `{"candidates":[]}`)
	g := newSDKGenerator(t, upstream.URL)

	text, err := g.Generate(context.Background(), "x", 500)

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestSDKGenerator_UpstreamRejection(t *testing.T) {
	t.Parallel()

	upstream := newFakeUpstream(t, http.StatusBadRequest,
		`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	g := newSDKGenerator(t, upstream.URL)

	text, err := g.Generate(context.Background(), "x", 500)

	assert.Empty(t, text)
	upstreamErr, ok := generation.AsUpstreamError(err)
	require.True(t, ok, "expected UpstreamError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Equal(t, "API key not valid", upstreamErr.Body)
}

func TestSDKGenerator_TransportFailure(t *testing.T) {
	t.Parallel()

	closed := httptest.NewServer(http.NotFoundHandler())
	baseURL := closed.URL
	closed.Close()

	g := newSDKGenerator(t, baseURL)

	_, err := g.Generate(context.Background(), "x", 500)

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrTransportFailure)
}
