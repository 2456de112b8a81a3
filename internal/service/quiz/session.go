package quiz

import (
	"context"
	"log/slog"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
)

// XP awarded per correct answer; the completion bonus is score times this.
const xpPerCorrectAnswer = 5

// Session is one quiz run over a fixed question sequence.
//
// The selection acts as the "already answered" lock: a question accepts only
// its first answer, and the selection is cleared exactly on Advance, never
// elsewhere. Completion is terminal; only building a fresh quiz or leaving
// quiz mode discards a completed session.
type Session struct {
	questions []domain.QuizQuestion
	current   int
	score     int
	selected  *string
	completed bool
	emitter   events.Emitter
	logger    *slog.Logger
}

// Current returns the question under the cursor.
func (s *Session) Current() (domain.QuizQuestion, bool) {
	if s.current < 0 || s.current >= len(s.questions) {
		return domain.QuizQuestion{}, false
	}
	return s.questions[s.current], true
}

// Answer records the selection for the current question. Re-selection after
// an answer is a no-op, so double submission cannot double-count the score.
// It reports whether the answer was accepted and whether it was correct.
func (s *Session) Answer(ctx context.Context, option string) (accepted, correct bool) {
	if s.completed || s.selected != nil {
		return false, false
	}
	question, ok := s.Current()
	if !ok {
		return false, false
	}

	s.selected = &option
	// Plain string equality: if the generator broke the contract and the
	// correct answer is not among the options, no selection ever matches.
	correct = option == question.CorrectAnswer
	if correct {
		s.score++
		if err := events.EmitXP(ctx, s.emitter, xpPerCorrectAnswer, "quiz_answer"); err != nil {
			s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
		}
	}
	return true, correct
}

// Advance moves to the next question, clearing the selection. From the last
// question it completes the session instead and awards the completion bonus
// of score x 5 XP. Advancing a completed session is a no-op.
func (s *Session) Advance(ctx context.Context) {
	if s.completed {
		return
	}
	s.selected = nil
	if s.current < len(s.questions)-1 {
		s.current++
		return
	}

	s.completed = true
	if bonus := s.score * xpPerCorrectAnswer; bonus > 0 {
		if err := events.EmitXP(ctx, s.emitter, bonus, "quiz_complete"); err != nil {
			s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
		}
	}
	s.logger.InfoContext(ctx, "quiz completed",
		slog.Int("score", s.score),
		slog.Int("question_count", len(s.questions)))
}

// Score returns the count of correctly answered questions.
func (s *Session) Score() int { return s.score }

// Completed reports whether the session has reached its terminal state.
func (s *Session) Completed() bool { return s.completed }

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int { return s.current }

// Selected returns the recorded selection for the current question, or nil
// when it is unanswered.
func (s *Session) Selected() *string { return s.selected }

// Questions returns a copy of the question sequence.
func (s *Session) Questions() []domain.QuizQuestion {
	out := make([]domain.QuizQuestion, len(s.questions))
	copy(out, s.questions)
	return out
}
