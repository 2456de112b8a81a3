package api

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/studyhub-api/internal/api/shared"
	"github.com/phrazzld/studyhub-api/internal/media"
	"github.com/phrazzld/studyhub-api/internal/service/speaking"
)

// SpeakingHandler exposes the speaking session over HTTP. The transport
// carries whole recorded clips, so each submission arms the capture buffer,
// loads the uploaded audio, and runs the session's usual record/submit path.
type SpeakingHandler struct {
	mu      sync.Mutex
	session *speaking.Session
	capture *media.BufferCapture
	logger  *slog.Logger
}

// NewSpeakingHandler creates a handler over the given session and its
// capture buffer.
func NewSpeakingHandler(session *speaking.Session, capture *media.BufferCapture, logger *slog.Logger) *SpeakingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpeakingHandler{
		session: session,
		capture: capture,
		logger:  logger.With(slog.String("component", "speaking_handler")),
	}
}

func (h *SpeakingHandler) stateResponse() SpeakingResponse {
	return SpeakingResponse{
		Mode:         string(h.session.Mode()),
		FreeFeedback: h.session.FreeFeedback(),
		Dialogue:     h.session.Dialogue(),
		Chat:         h.session.Chat(),
	}
}

// GetState returns the current session view.
func (h *SpeakingHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// SetMode switches the practice surface.
func (h *SpeakingHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req SpeakingModeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.session.SetMode(speaking.Mode(req.Mode))
	shared.RespondWithJSON(w, r, http.StatusOK, h.stateResponse())
}

// loadRecording decodes the uploaded clip and runs the record path up to
// the point where the session can consume it.
func (h *SpeakingHandler) loadRecording(r *http.Request, encoded string) error {
	audio, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return err
	}
	if err := h.session.StartRecording(r.Context()); err != nil {
		return err
	}
	h.capture.SetAudio(audio)
	return nil
}

// SubmitFree assesses one free-form clip.
func (h *SpeakingHandler) SubmitFree(w http.ResponseWriter, r *http.Request) {
	var req AudioSubmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadRecording(r, req.Audio); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	feedback, err := h.session.SubmitFree(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, feedback)
}

// GenerateDialogue builds a fresh practice dialogue.
func (h *SpeakingHandler) GenerateDialogue(w http.ResponseWriter, r *http.Request) {
	var req DialogueRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	lines, err := h.session.GenerateDialogue(r.Context(), req.Topic)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, lines)
}

// SubmitForLine assesses one clip against a dialogue line.
func (h *SpeakingHandler) SubmitForLine(w http.ResponseWriter, r *http.Request) {
	lineID := chi.URLParam(r, "lineID")

	var req AudioSubmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadRecording(r, req.Audio); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	feedback, err := h.session.SubmitForLine(r.Context(), lineID)
	if err != nil {
		// The clip was loaded but not consumed; drop it so the next
		// submission starts clean.
		h.session.CancelRecording()
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, feedback)
}

// SubmitTurn feeds one clip into the open conversation.
func (h *SpeakingHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req AudioSubmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.loadRecording(r, req.Audio); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	history, err := h.session.SubmitTurn(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, history)
}
