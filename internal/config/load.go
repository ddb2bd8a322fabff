package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "STORY"

// Default values applied before config files and environment variables.
const (
	DefaultPort                   = 8080
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
	DefaultModelName              = "gemini-2.0-flash"
	DefaultBaseURL                = "https://generativelanguage.googleapis.com/v1beta"
	DefaultBackend                = "rest"
	DefaultRequestTimeoutSeconds  = 60
)

// keys without defaults still need binding so AutomaticEnv picks them up
// during Unmarshal.
var boundKeys = []string{
	"llm.gemini_api_key",
}

// Load configuration from environment variables and optionally a config file
// named config.{yaml,json,toml} in the working directory.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching the working directory. A missing explicit file is an error.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LLM.BaseURL = strings.TrimRight(cfg.LLM.BaseURL, "/")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.base_url", DefaultBaseURL)
	v.SetDefault("llm.backend", DefaultBackend)
	v.SetDefault("llm.request_timeout_seconds", DefaultRequestTimeoutSeconds)
}
