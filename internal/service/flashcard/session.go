package flashcard

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/events"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/media"
	"github.com/phrazzld/studyhub-api/internal/service/quiz"
)

// State names the phase a flashcard session is in.
type State string

const (
	StateEmpty     State = "empty"
	StateReviewing State = "reviewing"
	StateQuizzing  State = "quizzing"
)

// BatchSize is how many cards a topic or word-list generation requests.
const BatchSize = 5

const (
	xpCommitPreview  = 10
	xpMasteredReview = 5
)

// Session is one flashcard study session. It is not self-locking; the
// transport layer serializes access, the same way the client disables its
// controls while a call is outstanding.
type Session struct {
	gen         generation.Generator
	images      media.ImageLookup
	emitter     events.Emitter
	quizBuilder *quiz.Builder
	logger      *slog.Logger

	state   State
	deck    []domain.Flashcard
	current int
	flipped bool
	preview *domain.Flashcard
	quiz    *quiz.Session
}

// NewSession creates an empty flashcard session.
func NewSession(
	gen generation.Generator,
	images media.ImageLookup,
	emitter events.Emitter,
	quizBuilder *quiz.Builder,
	logger *slog.Logger,
) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		gen:         gen,
		images:      images,
		emitter:     emitter,
		quizBuilder: quizBuilder,
		logger:      logger.With(slog.String("component", "flashcard_session")),
		state:       StateEmpty,
	}
}

// batchItem is the generator's shape for one card in a batch.
type batchItem struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	Example       string `json:"example"`
	ImageKeyword  string `json:"imageKeyword"`
}

func batchSchema() *generation.Schema {
	return generation.Array(generation.Object(map[string]*generation.Schema{
		"word":          generation.String(""),
		"pronunciation": generation.String("IPA phonetic transcription"),
		"meaning":       generation.String("the Vietnamese meaning, simple and easy to understand"),
		"example":       generation.String("one simple English example sentence"),
		"imageKeyword": generation.String(
			"a SINGLE concrete English noun that visually represents this word for image search " +
				"(e.g. 'cat', 'forest'); no abstract concepts"),
	}, "word", "pronunciation", "meaning", "example", "imageKeyword"))
}

const batchSystemInstruction = "You are a study assistant for Vietnamese high-school students. " +
	"Meanings must be in Vietnamese and example sentences must be in English."

// GenerateFromTopic replaces the deck with a batch of cards for the topic.
// On failure the session keeps its pre-call shape.
func (s *Session) GenerateFromTopic(ctx context.Context, topic string) error {
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("%w: topic is required", generation.ErrEmptyInput)
	}
	prompt := fmt.Sprintf(`Create %d English vocabulary words related to the topic: %q.
Requirements:
1. 'meaning' must be in Vietnamese.
2. 'example' must be an English sentence.
3. 'imageKeyword' must be a concrete English noun that best illustrates the word.`,
		BatchSize, topic)
	return s.generateBatch(ctx, prompt)
}

// GenerateFromWordList replaces the deck with cards for the given words.
// Misspelled input words may come back corrected by the generator.
func (s *Session) GenerateFromWordList(ctx context.Context, words []string) error {
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) != "" {
			cleaned = append(cleaned, strings.TrimSpace(w))
		}
	}
	if len(cleaned) == 0 {
		return fmt.Errorf("%w: word list is required", generation.ErrEmptyInput)
	}
	prompt := fmt.Sprintf(`I have this vocabulary list: %q.
Create detailed card content for each word.
Requirements:
1. 'meaning' must be in Vietnamese.
2. 'example' must be an English sentence.
3. 'imageKeyword' must be a concrete English noun that best illustrates the word.
If a word is misspelled, correct it.`,
		strings.Join(cleaned, ", "))
	return s.generateBatch(ctx, prompt)
}

func (s *Session) generateBatch(ctx context.Context, prompt string) error {
	raw, err := s.gen.Generate(ctx, generation.Request{
		Parts:             []generation.Part{generation.TextPart(prompt)},
		Schema:            batchSchema(),
		SystemInstruction: batchSystemInstruction,
	})
	if err != nil {
		return err
	}

	var items []batchItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: no cards in response", generation.ErrSchemaViolation)
	}

	deck := make([]domain.Flashcard, 0, len(items))
	for i, item := range items {
		card := domain.Flashcard{
			ID:            domain.NewID("fc"),
			Word:          item.Word,
			Pronunciation: item.Pronunciation,
			Meaning:       item.Meaning,
			Example:       item.Example,
			Status:        domain.CardStatusNew,
		}
		if err := card.Validate(); err != nil {
			return fmt.Errorf("%w: card %d: %v", generation.ErrSchemaViolation, i, err)
		}
		card.ImageRef = s.lookupImage(ctx, item.ImageKeyword)
		deck = append(deck, card)
	}

	// All-or-nothing: the deck is only replaced once every card checked out.
	s.deck = deck
	s.current = 0
	s.flipped = false
	s.quiz = nil
	s.state = StateReviewing

	s.logger.InfoContext(ctx, "deck generated", slog.Int("card_count", len(deck)))
	return nil
}

// lookupImage resolves an illustration; lookup failure costs the card its
// art, nothing more.
func (s *Session) lookupImage(ctx context.Context, prompt string) string {
	if s.images == nil || prompt == "" {
		return ""
	}
	ref, err := s.images.Lookup(ctx, prompt)
	if err != nil {
		s.logger.WarnContext(ctx, "image lookup failed",
			slog.String("prompt", prompt),
			slog.String("error", err.Error()))
		return ""
	}
	return ref
}

// singleItem is the generator's shape for a single richer card.
type singleItem struct {
	Word        string `json:"word"`
	Phonetic    string `json:"phonetic"`
	Meaning     string `json:"meaning"`
	Example     string `json:"example"`
	ImagePrompt string `json:"imagePrompt"`
}

func singleSchema() *generation.Schema {
	return generation.Object(map[string]*generation.Schema{
		"word":        generation.String(""),
		"phonetic":    generation.String("IPA phonetic transcription"),
		"meaning":     generation.String("the Vietnamese meaning, simple and easy to understand"),
		"example":     generation.String("one simple English example sentence"),
		"imagePrompt": generation.String("a simple English description of an image illustrating the word"),
	}, "word", "phonetic", "meaning", "example", "imagePrompt")
}

// GenerateSingleCard produces a richer preview card for one word. The
// preview is not part of the deck until CommitPreview.
func (s *Session) GenerateSingleCard(
	ctx context.Context,
	word, topic string,
	level domain.CardLevel,
	style domain.CardStyle,
) (*domain.Flashcard, error) {
	if strings.TrimSpace(word) == "" {
		return nil, fmt.Errorf("%w: word is required", generation.ErrEmptyInput)
	}
	if !domain.ValidCardStyle(style) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	prompt := fmt.Sprintf(`You are an English teacher for Vietnamese high-school students.
Create flashcard content for the word: %q
Topic: %s
Level: %s

Requirements:
- Give the IPA phonetic transcription.
- Vietnamese meaning, simple and easy to understand.
- One simple English example sentence that matches the image meaning.
- Language must suit %s level students.`,
		word, topic, level, level)

	raw, err := s.gen.Generate(ctx, generation.Request{
		Parts:  []generation.Part{generation.TextPart(prompt)},
		Schema: singleSchema(),
	})
	if err != nil {
		return nil, err
	}

	var item singleItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}

	card := domain.Flashcard{
		ID:            domain.NewID("fc"),
		Word:          item.Word,
		Pronunciation: item.Phonetic,
		Meaning:       item.Meaning,
		Example:       item.Example,
		Status:        domain.CardStatusNew,
		Topic:         topic,
		Level:         level,
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrSchemaViolation, err)
	}
	card.ImageRef = s.lookupImage(ctx, media.StyledPrompt(item.ImagePrompt, string(style)))

	s.preview = &card
	return &card, nil
}

// CommitPreview appends the preview card to the deck and clears the preview
// slot, awarding the creation bonus.
func (s *Session) CommitPreview(ctx context.Context) (*domain.Flashcard, error) {
	if s.preview == nil {
		return nil, ErrNoPreview
	}
	card := *s.preview
	s.deck = append(s.deck, card)
	s.preview = nil
	if s.state == StateEmpty {
		s.state = StateReviewing
		s.current = 0
	}

	if err := events.EmitXP(ctx, s.emitter, xpCommitPreview, "flashcard_commit"); err != nil {
		s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
	}
	return &card, nil
}

// DiscardPreview drops the preview card without committing it.
func (s *Session) DiscardPreview() error {
	if s.preview == nil {
		return ErrNoPreview
	}
	s.preview = nil
	return nil
}

// ReviewCurrent marks the current card reviewed, awarding XP when mastered,
// and advances the cursor. Reviewing the last card does not wrap around:
// the caller chooses Restart or BeginQuiz from there.
func (s *Session) ReviewCurrent(ctx context.Context, mastered bool) error {
	if len(s.deck) == 0 || s.state != StateReviewing {
		return ErrNoDeck
	}

	if mastered {
		s.deck[s.current].Status = domain.CardStatusMastered
		if err := events.EmitXP(ctx, s.emitter, xpMasteredReview, "flashcard_review"); err != nil {
			s.logger.WarnContext(ctx, "failed to emit xp", slog.String("error", err.Error()))
		}
	} else {
		s.deck[s.current].Status = domain.CardStatusLearning
	}

	s.flipped = false
	if s.current < len(s.deck)-1 {
		s.current++
	}
	return nil
}

// AtLastCard reports whether the cursor is on the final card.
func (s *Session) AtLastCard() bool {
	return len(s.deck) > 0 && s.current == len(s.deck)-1
}

// Restart moves the cursor back to the first card for another review pass.
func (s *Session) Restart() error {
	if len(s.deck) == 0 {
		return ErrNoDeck
	}
	s.current = 0
	s.flipped = false
	s.quiz = nil
	s.state = StateReviewing
	return nil
}

// BeginQuiz builds a quiz from the deck and switches the session into quiz
// mode. On failure the session stays in review mode.
func (s *Session) BeginQuiz(ctx context.Context) (*quiz.Session, error) {
	if len(s.deck) == 0 {
		return nil, ErrNoDeck
	}
	quizSession, err := s.quizBuilder.Build(ctx, s.Deck())
	if err != nil {
		return nil, err
	}
	s.quiz = quizSession
	s.state = StateQuizzing
	return quizSession, nil
}

// ReturnToReview leaves quiz mode, discarding the quiz session.
func (s *Session) ReturnToReview() {
	s.quiz = nil
	if len(s.deck) > 0 {
		s.state = StateReviewing
	} else {
		s.state = StateEmpty
	}
}

// ToggleFlip flips the current card. Flipping is presentational and never
// advances the cursor.
func (s *Session) ToggleFlip() bool {
	s.flipped = !s.flipped
	return s.flipped
}

// State returns the session phase.
func (s *Session) State() State { return s.state }

// Deck returns a copy of the deck.
func (s *Session) Deck() []domain.Flashcard {
	out := make([]domain.Flashcard, len(s.deck))
	copy(out, s.deck)
	return out
}

// CurrentIndex returns the review cursor.
func (s *Session) CurrentIndex() int { return s.current }

// Flipped reports the presentational flip state of the current card.
func (s *Session) Flipped() bool { return s.flipped }

// Preview returns the uncommitted preview card, if any.
func (s *Session) Preview() *domain.Flashcard { return s.preview }

// Quiz returns the active quiz session, if any.
func (s *Session) Quiz() *quiz.Session { return s.quiz }
