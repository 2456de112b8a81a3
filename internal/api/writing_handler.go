package api

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"sync"

	"github.com/phrazzld/studyhub-api/internal/api/shared"
	"github.com/phrazzld/studyhub-api/internal/service/writing"
)

// WritingHandler exposes writing assessment over HTTP.
type WritingHandler struct {
	mu      sync.Mutex
	service *writing.Service
	logger  *slog.Logger
}

// NewWritingHandler creates a handler over the given service.
func NewWritingHandler(service *writing.Service, logger *slog.Logger) *WritingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WritingHandler{
		service: service,
		logger:  logger.With(slog.String("component", "writing_handler")),
	}
}

// Assess grades one written submission.
func (h *WritingHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var req WritingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	input := writing.Input{Text: req.Text, ImageMIMEType: req.ImageMIMEType, Topic: req.Topic}
	if req.Image != "" {
		image, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image encoding")
			return
		}
		input.Image = image
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.service.Assess(r.Context(), input)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
