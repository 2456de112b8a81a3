package generation

import "errors"

// Common errors returned by generator implementations and by the session
// engines that consume them.
var (
	// ErrMissingCredential is returned when no API credential is configured.
	// It is raised before any network attempt is made.
	ErrMissingCredential = errors.New("no generator credential configured")

	// ErrTransportFailure is returned when the network call to the generator
	// fails or the provider reports an error.
	ErrTransportFailure = errors.New("generator request failed")

	// ErrMalformedResponse is returned when the generator's raw response
	// cannot be parsed as JSON.
	ErrMalformedResponse = errors.New("generator returned malformed response")

	// ErrSchemaViolation is returned when the generator's JSON parses but is
	// missing fields the requested schema marked as required.
	ErrSchemaViolation = errors.New("generator response violates requested schema")

	// ErrEmptyInput is returned when an operation is attempted without the
	// input it needs (no prompt parts, no topic, no text). It is raised
	// before any network attempt is made.
	ErrEmptyInput = errors.New("empty input")
)
