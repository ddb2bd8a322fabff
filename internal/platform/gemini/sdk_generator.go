package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/story-api/internal/config"
	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/redact"
	"google.golang.org/genai"
)

// SDKGenerator implements generation.Generator using the
// google.golang.org/genai client. The SDK authenticates with the
// x-goog-api-key header and decodes error bodies itself, so an
// UpstreamError from this adapter carries the upstream error message
// rather than the raw body.
type SDKGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewSDKGenerator creates a genai client for the Gemini API backend.
func NewSDKGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	httpClient *http.Client,
) (*SDKGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL, apiVersion, err := splitBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    baseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &SDKGenerator{
		logger: logger,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Generate implements generation.Generator.
func (g *SDKGenerator) Generate(ctx context.Context, text string, maxTokens int) (string, error) {
	g.logger.DebugContext(ctx, "Calling Gemini through the genai SDK",
		"model", g.model,
		"prompt_length", len(text),
		"max_output_tokens", maxTokens)

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			g.logger.WarnContext(ctx, "Gemini API rejected request",
				"status_code", apiErr.Code,
				"status", apiErr.Status)
			return "", &generation.UpstreamError{StatusCode: apiErr.Code, Body: apiErr.Message}
		}

		err = fmt.Errorf("%w: %w", generation.ErrTransportFailure, err)
		g.logger.ErrorContext(ctx, "Gemini API call failed", "error", redact.Error(err))
		return "", err
	}

	story := firstCandidateText(resp)
	if story == "" {
		g.logger.WarnContext(ctx, "Gemini response did not contain generated text")
	}

	g.logger.InfoContext(ctx, "Gemini API call successful", "text_length", len(story))
	return story, nil
}

// firstCandidateText mirrors extractGeneratedText for decoded SDK responses.
func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}
	part := candidate.Content.Parts[0]
	if part == nil {
		return ""
	}
	return part.Text
}

// splitBaseURL separates a versioned base URL such as
// https://generativelanguage.googleapis.com/v1beta into the host root and the
// API version, the two pieces genai.HTTPOptions expects.
func splitBaseURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", fmt.Errorf("%w: invalid base URL %q", generation.ErrInvalidConfig, raw)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return "", "", fmt.Errorf("%w: base URL %q has no API version", generation.ErrInvalidConfig, raw)
	}

	version := path
	prefix := ""
	if i := strings.LastIndex(path, "/"); i >= 0 {
		prefix, version = path[:i], path[i+1:]
	}

	u.Path = ""
	if prefix != "" {
		u.Path = "/" + prefix
	}
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), version, nil
}
