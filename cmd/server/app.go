package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/story-api/internal/config"
	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/platform/gemini"
	"github.com/phrazzld/story-api/internal/platform/logger"
	"github.com/phrazzld/story-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger     *slog.Logger
	httpClient *http.Client

	// Service interfaces
	generator    generation.Generator
	storyService service.StoryService
}

// bootstrap loads configuration, sets up logging and builds the application.
func bootstrap(ctx context.Context, configPath string) (*application, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_backend", cfg.LLM.Backend,
		"llm_model", cfg.LLM.ModelName)

	return newApplication(ctx, cfg, l, nil)
}

// newApplication creates a new application instance with all dependencies initialized.
// A nil generator selects the Gemini backend named in cfg.LLM.Backend.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	generator generation.Generator,
) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		httpClient: gemini.NewHTTPClient(cfg.LLM),
	}

	var err error
	if generator == nil {
		generator, err = gemini.NewGenerator(ctx, logger, cfg.LLM, app.httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize story generator: %w", err)
		}
	}
	app.generator = generator

	app.storyService, err = service.NewStoryService(app.generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create story service: %w", err)
	}

	logger.Info("Application initialized",
		"request_timeout", cfg.LLM.RequestTimeout().String())

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	app.httpClient.CloseIdleConnections()
	app.logger.Debug("Application resources released")
}
