package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/phrazzld/studyhub-api/internal/api/shared"
	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/service/flashcard"
	"github.com/phrazzld/studyhub-api/internal/service/quiz"
)

// FlashcardHandler exposes the flashcard session over HTTP, including the
// quiz that runs over the deck.
type FlashcardHandler struct {
	mu      sync.Mutex
	session *flashcard.Session
	logger  *slog.Logger
}

// NewFlashcardHandler creates a handler over the given session.
func NewFlashcardHandler(session *flashcard.Session, logger *slog.Logger) *FlashcardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlashcardHandler{
		session: session,
		logger:  logger.With(slog.String("component", "flashcard_handler")),
	}
}

func (h *FlashcardHandler) deckResponse() DeckResponse {
	return DeckResponse{
		State:        string(h.session.State()),
		Cards:        h.session.Deck(),
		CurrentIndex: h.session.CurrentIndex(),
		Flipped:      h.session.Flipped(),
		Preview:      h.session.Preview(),
	}
}

// GetState returns the current session view.
func (h *FlashcardHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// GenerateDeck builds a fresh deck from a topic or a word list.
func (h *FlashcardHandler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	var req GenerateDeckRequest
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

	var err error
	if req.Topic != "" {
		err = h.session.GenerateFromTopic(r.Context(), req.Topic)
	} else {
		err = h.session.GenerateFromWordList(r.Context(), req.Words)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// GenerateCard builds a single preview card.
func (h *FlashcardHandler) GenerateCard(w http.ResponseWriter, r *http.Request) {
	var req GenerateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	level := domain.CardLevel(req.Level)
	if level == "" {
		level = domain.CardLevelMedium
	}
	style := domain.CardStyle(req.Style)
	if style == "" {
		style = domain.CardStyleHandDrawn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	preview, err := h.session.GenerateSingleCard(r.Context(), req.Word, req.Topic, level, style)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, preview)
}

// CommitPreview adds the preview card to the deck.
func (h *FlashcardHandler) CommitPreview(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.session.CommitPreview(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// DiscardPreview drops the preview card.
func (h *FlashcardHandler) DiscardPreview(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.DiscardPreview(); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// Review marks the current card reviewed and advances.
func (h *FlashcardHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.ReviewCurrent(r.Context(), req.Mastered); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// Flip toggles the current card face.
func (h *FlashcardHandler) Flip(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.session.ToggleFlip()
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// Restart begins another review pass over the same deck.
func (h *FlashcardHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.session.Restart(); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}

// quizResponse builds the client view of the quiz, withholding answers for
// questions the student has not resolved yet.
func quizResponse(s *quiz.Session) QuizResponse {
	questions := s.Questions()
	views := make([]QuizQuestionView, 0, len(questions))
	for i, q := range questions {
		view := QuizQuestionView{
			ID:         q.ID,
			Question:   q.Question,
			Options:    q.Options,
			Type:       string(q.Type),
			Difficulty: string(q.Difficulty),
		}
		answered := s.Completed() || i < s.CurrentIndex() ||
			(i == s.CurrentIndex() && s.Selected() != nil)
		if answered {
			view.CorrectAnswer = q.CorrectAnswer
			view.Explanation = q.Explanation
		}
		views = append(views, view)
	}
	return QuizResponse{
		Questions:    views,
		CurrentIndex: s.CurrentIndex(),
		Score:        s.Score(),
		Selected:     s.Selected(),
		Completed:    s.Completed(),
	}
}

// BeginQuiz generates a quiz from the deck and enters quiz mode.
func (h *FlashcardHandler) BeginQuiz(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	quizSession, err := h.session.BeginQuiz(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, quizResponse(quizSession))
}

// AnswerQuiz selects an option for the current question.
func (h *FlashcardHandler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizAnswerRequest
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

	quizSession := h.session.Quiz()
	if quizSession == nil {
		shared.RespondWithError(w, r, http.StatusConflict, "No quiz in progress")
		return
	}
	quizSession.Answer(r.Context(), req.Option)
	shared.RespondWithJSON(w, r, http.StatusOK, quizResponse(quizSession))
}

// AdvanceQuiz moves to the next question, or completes the quiz.
func (h *FlashcardHandler) AdvanceQuiz(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	quizSession := h.session.Quiz()
	if quizSession == nil {
		shared.RespondWithError(w, r, http.StatusConflict, "No quiz in progress")
		return
	}
	quizSession.Advance(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, quizResponse(quizSession))
}

// ExitQuiz leaves quiz mode and returns to review.
func (h *FlashcardHandler) ExitQuiz(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.session.ReturnToReview()
	shared.RespondWithJSON(w, r, http.StatusOK, h.deckResponse())
}
