package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
	"github.com/phrazzld/studyhub-api/internal/generation"
)

// QuestionCount is how many questions a quiz requests from the generator.
const QuestionCount = 5

// Builder creates quiz sessions from a deck.
type Builder struct {
	gen     generation.Generator
	emitter events.Emitter
	logger  *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(gen generation.Generator, emitter events.Emitter, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		gen:     gen,
		emitter: emitter,
		logger:  logger.With(slog.String("component", "quiz_builder")),
	}
}

func questionSchema() *generation.Schema {
	return generation.Array(generation.Object(map[string]*generation.Schema{
		"id":            generation.String(""),
		"question":      generation.String(""),
		"options":       generation.Array(generation.String("")),
		"correctAnswer": generation.String(""),
		"explanation":   generation.String("a short explanation, in Vietnamese, of why the answer is correct"),
		"type":          generation.StringEnum("meaning", "fill-blank", "synonym", "antonym"),
		"difficulty":    generation.StringEnum("easy", "medium", "hard"),
	}, "id", "question", "options", "correctAnswer", "explanation", "type", "difficulty"))
}

// Build requests QuestionCount questions for the deck. The difficulty
// distribution (2 easy, 2 medium, 1 hard) is a prompt-level instruction; the
// session accepts whatever distribution comes back, but every question must
// carry all required fields.
func (b *Builder) Build(ctx context.Context, deck []domain.Flashcard) (*Session, error) {
	if len(deck) == 0 {
		return nil, fmt.Errorf("%w: deck is empty", generation.ErrEmptyInput)
	}

	words := make([]string, 0, len(deck))
	for _, card := range deck {
		words = append(words, fmt.Sprintf("%s (%s)", card.Word, card.Meaning))
	}

	prompt := fmt.Sprintf(`Based on this vocabulary list: %s.
Create %d multiple-choice questions to test a high-school student.

Difficulty distribution:
- 2 easy questions: word meaning (English to Vietnamese or the reverse).
- 2 medium questions: fill in the blank in an English sentence.
- 1 hard question: synonym, antonym, or an advanced context question.

Every question must have exactly 4 answer options.`,
		strings.Join(words, ", "), QuestionCount)

	raw, err := b.gen.Generate(ctx, generation.Request{
		Parts:  []generation.Part{generation.TextPart(prompt)},
		Schema: questionSchema(),
	})
	if err != nil {
		return nil, err
	}

	var questions []domain.QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", generation.ErrSchemaViolation)
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", generation.ErrSchemaViolation, i, err)
		}
		if questions[i].ID == "" {
			questions[i].ID = domain.NewID("qz")
		}
	}

	b.logger.InfoContext(ctx, "quiz built",
		slog.Int("deck_size", len(deck)),
		slog.Int("question_count", len(questions)))

	return &Session{
		questions: questions,
		emitter:   b.emitter,
		logger:    b.logger,
	}, nil
}
