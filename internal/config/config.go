package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeoutSeconds bounds how long in-flight requests may take to
	// drain once a shutdown signal arrives.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`

	// CORSAllowedOrigins lists the origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1"`
}

// ShutdownTimeout returns ShutdownTimeoutSeconds as a time.Duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`

	// BaseURL is the versioned root of the Gemini REST API, without a trailing slash.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Backend selects the generator adapter: the hand-built REST client or
	// the google.golang.org/genai SDK.
	Backend string `mapstructure:"backend" validate:"required,oneof=rest sdk"`

	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}

// RequestTimeout returns RequestTimeoutSeconds as a time.Duration.
func (c LLMConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
