package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studyhub-api/internal/api/shared"
	"github.com/phrazzld/studyhub-api/internal/progress"
)

// ProgressHandler exposes the aggregated study stats over HTTP.
type ProgressHandler struct {
	tracker *progress.Tracker
	logger  *slog.Logger
}

// NewProgressHandler creates a handler over the given tracker.
func NewProgressHandler(tracker *progress.Tracker, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		tracker: tracker,
		logger:  logger.With(slog.String("component", "progress_handler")),
	}
}

// GetStats returns the current XP, level, streak, and badges.
func (h *ProgressHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.tracker.Stats())
}
