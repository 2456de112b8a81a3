package api

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"sync"

	"github.com/phrazzld/studyhub-api/internal/api/shared"
	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/service/analysis"
)

// AnalysisHandler exposes content analysis and summary playback over HTTP.
type AnalysisHandler struct {
	mu     sync.Mutex
	engine *analysis.Engine
	logger *slog.Logger
}

// NewAnalysisHandler creates a handler over the given engine.
func NewAnalysisHandler(engine *analysis.Engine, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisHandler{
		engine: engine,
		logger: logger.With(slog.String("component", "analysis_handler")),
	}
}

// Analyze runs one analysis over submitted text or a page image.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	input := analysis.Input{Text: req.Text, ImageMIMEType: req.ImageMIMEType}
	if req.Image != "" {
		image, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid image encoding")
			return
		}
		input.Image = image
	}

	opts := domain.AnalysisOptions{
		SummaryLength: domain.SummaryLength(req.SummaryLength),
		Mode:          domain.AnalysisMode(req.Mode),
	}
	if opts.SummaryLength == "" {
		opts.SummaryLength = domain.SummaryMedium
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeBoth
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.engine.Analyze(r.Context(), input, opts)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetResult returns the latest analysis.
func (h *AnalysisHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result := h.engine.Result()
	if result == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "No analysis result yet")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ToggleAudio toggles spoken playback of the current summary.
func (h *AnalysisHandler) ToggleAudio(w http.ResponseWriter, r *http.Request) {
	var req PlayAudioRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.Lang == "" {
		req.Lang = "vi"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	playing, err := h.engine.PlaySummaryAudio(r.Context(), req.Lang)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PlaybackResponse{Playing: playing})
}
