// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Environment variables use the STORY_ prefix and replace dots with
// underscores, so llm.gemini_api_key is read from STORY_LLM_GEMINI_API_KEY.
package config
