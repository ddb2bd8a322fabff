package main

import (
	"context"
	"testing"

	"github.com/phrazzld/story-api/internal/config"
	"github.com/phrazzld/story-api/internal/generation"
	"github.com/phrazzld/story-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration with the package defaults.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   config.DefaultPort,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: config.DefaultShutdownTimeoutSeconds,
			CORSAllowedOrigins:     []string{"*"},
		},
		LLM: config.LLMConfig{
			GeminiAPIKey:          "test-key",
			ModelName:             config.DefaultModelName,
			BaseURL:               config.DefaultBaseURL,
			Backend:               config.DefaultBackend,
			RequestTimeoutSeconds: config.DefaultRequestTimeoutSeconds,
		},
	}
}

// newTestApp builds an application around generator with a captured logger.
func newTestApp(t *testing.T, generator generation.Generator) (*application, *logger.TestLogBuffer) {
	t.Helper()

	logBuf, log := logger.SetupTestLogger(t)
	app, err := newApplication(context.Background(), testConfig(), log, generator)
	require.NoError(t, err)
	return app, logBuf
}
