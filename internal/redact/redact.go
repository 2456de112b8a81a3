// Package redact strips sensitive values from strings before they reach the
// logs or an error response. Provider errors in particular can echo the
// request URL, which carries the API key as a query parameter.
package redact

import "regexp"

// RedactedKeyPlaceholder replaces anything that looks like a credential.
const RedactedKeyPlaceholder = "[REDACTED_KEY]"

var (
	// key=... query parameters, the Gemini API's credential carrier.
	queryKeyRegex = regexp.MustCompile(`(?i)([?&](?:api[_-]?key|key|token)=)[A-Za-z0-9_\-.~+/]+`)

	// api_key: value / Authorization-style assignments in error text.
	apiKeyRegex = regexp.MustCompile(`(?i)(api[_-]?key|authorization|bearer|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`)

	// Bare Google-style API keys.
	googleKeyRegex = regexp.MustCompile(`\bAIza[A-Za-z0-9_\-]{30,}\b`)
)

// String redacts credential-shaped fragments from the input.
func String(input string) string {
	if input == "" {
		return input
	}
	out := queryKeyRegex.ReplaceAllString(input, "${1}"+RedactedKeyPlaceholder)
	out = apiKeyRegex.ReplaceAllString(out, "${1}${2}"+RedactedKeyPlaceholder)
	out = googleKeyRegex.ReplaceAllString(out, RedactedKeyPlaceholder)
	return out
}

// Error redacts an error's message; nil yields the empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
