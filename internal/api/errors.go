package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/media"
	"github.com/phrazzld/studyhub-api/internal/service/analysis"
	"github.com/phrazzld/studyhub-api/internal/service/flashcard"
	"github.com/phrazzld/studyhub-api/internal/service/speaking"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Bad input from the caller
	case errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, flashcard.ErrUnknownStyle):
		return http.StatusBadRequest

	// The upstream generator misbehaved
	case errors.Is(err, generation.ErrTransportFailure),
		errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrSchemaViolation):
		return http.StatusBadGateway

	// Deployment problem, nothing a retry fixes
	case errors.Is(err, generation.ErrMissingCredential):
		return http.StatusServiceUnavailable

	// Not found errors
	case errors.Is(err, domain.ErrDialogueLineNotFound):
		return http.StatusNotFound

	// Device access
	case errors.Is(err, media.ErrPermissionDenied):
		return http.StatusForbidden

	// Operations that do not fit the session's current state
	case errors.Is(err, flashcard.ErrNoDeck),
		errors.Is(err, flashcard.ErrNoPreview),
		errors.Is(err, speaking.ErrNoRecording),
		errors.Is(err, speaking.ErrNoDialogue),
		errors.Is(err, analysis.ErrNoResult),
		errors.Is(err, media.ErrAlreadyRecording),
		errors.Is(err, media.ErrNotPlaying):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for the
// error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrEmptyInput):
		return "Nothing to work with; provide some input"

	case errors.Is(err, flashcard.ErrUnknownStyle):
		return "Unknown illustration style"

	case errors.Is(err, generation.ErrTransportFailure):
		return "The generation service is unreachable"

	case errors.Is(err, generation.ErrMalformedResponse),
		errors.Is(err, generation.ErrSchemaViolation):
		return "The generation service returned an unusable response"

	case errors.Is(err, generation.ErrMissingCredential):
		return "The generation service is not configured"

	case errors.Is(err, domain.ErrDialogueLineNotFound):
		return "Dialogue line not found"

	case errors.Is(err, media.ErrPermissionDenied):
		return "Audio device access denied"

	case errors.Is(err, media.ErrAlreadyRecording):
		return "A recording is already in progress"

	case errors.Is(err, media.ErrNotPlaying):
		return "Nothing is playing"

	case errors.Is(err, flashcard.ErrNoDeck):
		return "No deck in session; generate one first"

	case errors.Is(err, flashcard.ErrNoPreview):
		return "No preview card; generate one first"

	case errors.Is(err, speaking.ErrNoRecording):
		return "No recording in progress"

	case errors.Is(err, speaking.ErrNoDialogue):
		return "No dialogue in session; generate one first"

	case errors.Is(err, analysis.ErrNoResult):
		return "No analysis result yet"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a user-friendly
// message without echoing submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'GenerateDeckRequest.Topic' Error:Field validation for 'Topic' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
