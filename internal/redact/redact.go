// Package redact provides utilities for redacting sensitive information from strings
// before they are logged or returned in error responses. Upstream client errors
// embed the request URL, and the Gemini API key travels in that URL, so every
// error that reaches a log goes through this package first.
package redact

import (
	"regexp"
)

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

// rule replaces every match of pattern using the regexp template replacement.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; the query-parameter rule keeps the parameter name so
// the redacted URL stays readable.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)([?&](?:key|api_key|apikey|access_token)=)[^&\s"']+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	{
		// Google API keys
		pattern:     regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		replacement: RedactedCredentialPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)(api[_-]?key|x-goog-api-key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`,
		),
		replacement: RedactedKeyPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmailPlaceholder,
	},
}

// String redacts sensitive information from the input string
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}

	return result
}

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
