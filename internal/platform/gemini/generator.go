package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/story-api/internal/config"
	"github.com/phrazzld/story-api/internal/generation"
)

// Backend names accepted in config.LLMConfig.Backend.
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// NewHTTPClient returns the client shared by every upstream call. Its timeout
// bounds each generateContent round-trip.
func NewHTTPClient(cfg config.LLMConfig) *http.Client {
	return &http.Client{Timeout: cfg.RequestTimeout()}
}

// NewGenerator creates the generation.Generator selected by cfg.Backend.
//
// Parameters:
//   - ctx: Context for initialization, which may include timeouts or cancellation
//   - logger: A logger for recording operations
//   - cfg: Configuration information including API keys and settings
//   - httpClient: Shared HTTP client; nil builds one from cfg
//
// Returns:
//   - A generation.Generator implementation
//   - An error if initialization fails
func NewGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
	httpClient *http.Client,
) (generation.Generator, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg)
	}

	logger.InfoContext(ctx, "Initializing Gemini generator",
		"backend", cfg.Backend,
		"model", cfg.ModelName)

	switch cfg.Backend {
	case BackendREST, "":
		generator, err := NewRESTGenerator(logger, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return generator, nil
	case BackendSDK:
		generator, err := NewSDKGenerator(ctx, logger, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", generation.ErrInvalidConfig, cfg.Backend)
	}
}
