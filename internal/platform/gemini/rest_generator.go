package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/phrazzld/story-api/internal/config"
	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/redact"
	"github.com/tidwall/gjson"
)

// maxResponseBytes caps how much of an upstream body is read into memory.
const maxResponseBytes = 8 << 20

// RESTGenerator implements generation.Generator by posting directly to the
// Gemini generateContent REST endpoint.
type RESTGenerator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// httpClient is shared by all requests and must be safe for concurrent use
	httpClient *http.Client

	// endpoint is the generateContent URL without the key parameter
	endpoint string

	apiKey string
}

// NewRESTGenerator creates a RESTGenerator for the model and base URL in cfg.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and base URL
//   - httpClient: The client used for upstream calls; its Timeout bounds each call
//
// Returns:
//   - A properly initialized RESTGenerator or an error if the configuration is unusable
func NewRESTGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	httpClient *http.Client,
) (*RESTGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if httpClient == nil {
		return nil, errors.New("http client cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	endpoint, err := generateContentURL(cfg.BaseURL, cfg.ModelName)
	if err != nil {
		return nil, err
	}

	return &RESTGenerator{
		logger:     logger,
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     cfg.GeminiAPIKey,
	}, nil
}

// Generate implements generation.Generator.
func (g *RESTGenerator) Generate(ctx context.Context, text string, maxTokens int) (string, error) {
	req, err := g.newRequest(ctx, text, maxTokens)
	if err != nil {
		return "", err
	}

	g.logger.DebugContext(ctx, "Calling Gemini generateContent",
		"endpoint", g.endpoint,
		"prompt_length", len(text),
		"max_output_tokens", maxTokens)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		err = g.transportError(err)
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", redact.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		err = g.transportError(err)
		g.logger.ErrorContext(ctx, "Failed to read Gemini response body", "error", redact.Error(err))
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		g.logger.WarnContext(ctx, "Gemini API rejected request",
			"status_code", resp.StatusCode,
			"body_length", len(body))
		return "", &generation.UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if !gjson.ValidBytes(body) {
		g.logger.ErrorContext(ctx, "Gemini API returned a body that is not JSON",
			"body_length", len(body))
		return "", fmt.Errorf("%w: response body is not valid JSON", generation.ErrInvalidResponse)
	}

	story := extractGeneratedText(body)
	if story == "" {
		g.logger.WarnContext(ctx, "Gemini response did not contain generated text")
	}

	g.logger.InfoContext(ctx, "Gemini API call successful", "text_length", len(story))
	return story, nil
}

func (g *RESTGenerator) newRequest(ctx context.Context, text string, maxTokens int) (*http.Request, error) {
	payload, err := json.Marshal(newGenerateContentRequest(text, maxTokens))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	u, err := url.Parse(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint: %v", generation.ErrInvalidConfig, err)
	}
	query := u.Query()
	query.Set("key", g.apiKey)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// transportError wraps err with ErrTransportFailure. A *url.Error carries the
// full request URL, key included, so it is rebuilt around the bare endpoint.
func (g *RESTGenerator) transportError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s %s: %w", generation.ErrTransportFailure, urlErr.Op, g.endpoint, urlErr.Err)
	}
	return fmt.Errorf("%w: %w", generation.ErrTransportFailure, err)
}

// generateContentURL joins the API base URL and model into the
// models/{model}:generateContent endpoint.
func generateContentURL(baseURL, model string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: invalid base URL %q", generation.ErrInvalidConfig, baseURL)
	}

	return base.JoinPath("models", model+":generateContent").String(), nil
}
