package flashcard_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/mocks"
	"github.com/phrazzld/studyhub-api/internal/service/flashcard"
	"github.com/phrazzld/studyhub-api/internal/service/quiz"
)

// fakeLookup resolves every prompt to a predictable reference and records
// the prompts it saw.
type fakeLookup struct {
	prompts []string
	err     error
}

func (f *fakeLookup) Lookup(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return "img://" + prompt, nil
}

func batchResponse(n int) string {
	type item struct {
		Word          string `json:"word"`
		Pronunciation string `json:"pronunciation"`
		Meaning       string `json:"meaning"`
		Example       string `json:"example"`
		ImageKeyword  string `json:"imageKeyword"`
	}
	items := make([]item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, item{
			Word:          fmt.Sprintf("word%d", i),
			Pronunciation: "/wɜːd/",
			Meaning:       fmt.Sprintf("nghĩa %d", i),
			Example:       "An example sentence.",
			ImageKeyword:  fmt.Sprintf("thing%d", i),
		})
	}
	raw, _ := json.Marshal(items)
	return string(raw)
}

const singleResponse = `{
	"word": "resilient",
	"phonetic": "/rɪˈzɪl.i.ənt/",
	"meaning": "kiên cường",
	"example": "She stayed resilient after the storm.",
	"imagePrompt": "a small plant growing through concrete"
}`

func newSession(gen *mocks.Generator, emitter *mocks.Emitter) (*flashcard.Session, *fakeLookup) {
	lookup := &fakeLookup{}
	builder := quiz.NewBuilder(gen, emitter, nil)
	return flashcard.NewSession(gen, lookup, emitter, builder, nil), lookup
}

func reviewingSession(t *testing.T, emitter *mocks.Emitter) *flashcard.Session {
	t.Helper()
	session, _ := newSession(mocks.RespondWith(batchResponse(5)), emitter)
	require.NoError(t, session.GenerateFromTopic(context.Background(), "weather"))
	return session
}

func TestGenerateFromTopic(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(batchResponse(5))
	session, lookup := newSession(gen, &mocks.Emitter{})

	require.NoError(t, session.GenerateFromTopic(context.Background(), "weather"))

	assert.Equal(t, flashcard.StateReviewing, session.State())
	deck := session.Deck()
	require.Len(t, deck, 5)
	for i, card := range deck {
		assert.NotEmpty(t, card.ID)
		assert.Equal(t, domain.CardStatusNew, card.Status)
		assert.Equal(t, "img://thing"+fmt.Sprint(i), card.ImageRef)
	}
	assert.Equal(t, 0, session.CurrentIndex())
	assert.Len(t, lookup.prompts, 5)
}

func TestGenerateFromWordList(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(batchResponse(3))
	session, _ := newSession(gen, &mocks.Emitter{})

	err := session.GenerateFromWordList(context.Background(), []string{" cat ", "", "dog", "bird"})
	require.NoError(t, err)
	assert.Len(t, session.Deck(), 3)

	// Blank entries were dropped before prompting.
	require.Len(t, gen.Requests, 1)
	assert.Contains(t, gen.Requests[0].Parts[0].Text, "cat, dog, bird")
}

func TestGenerateEmptyInput(t *testing.T) {
	t.Parallel()

	session, _ := newSession(mocks.RespondWith(batchResponse(5)), &mocks.Emitter{})

	assert.ErrorIs(t, session.GenerateFromTopic(context.Background(), "  "), generation.ErrEmptyInput)
	assert.ErrorIs(t, session.GenerateFromWordList(context.Background(), []string{" ", ""}), generation.ErrEmptyInput)
	assert.Equal(t, flashcard.StateEmpty, session.State())
}

func TestGenerateFailureKeepsDeck(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(batchResponse(5))
	session, _ := newSession(gen, &mocks.Emitter{})
	require.NoError(t, session.GenerateFromTopic(context.Background(), "weather"))
	before := session.Deck()

	gen.GenerateFn = func(context.Context, generation.Request) (json.RawMessage, error) {
		return nil, generation.ErrTransportFailure
	}
	err := session.GenerateFromTopic(context.Background(), "travel")
	assert.ErrorIs(t, err, generation.ErrTransportFailure)

	// The prior deck survives a failed regeneration intact.
	assert.Equal(t, before, session.Deck())
	assert.Equal(t, flashcard.StateReviewing, session.State())
}

func TestGenerateMalformedBatchKeepsDeck(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(batchResponse(5))
	session, _ := newSession(gen, &mocks.Emitter{})
	require.NoError(t, session.GenerateFromTopic(context.Background(), "weather"))

	gen.GenerateFn = func(context.Context, generation.Request) (json.RawMessage, error) {
		return json.RawMessage(`[{"word": ""}]`), nil
	}
	err := session.GenerateFromTopic(context.Background(), "travel")
	assert.ErrorIs(t, err, generation.ErrSchemaViolation)
	assert.Len(t, session.Deck(), 5)
}

func TestImageLookupFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	builder := quiz.NewBuilder(mocks.RespondWith(batchResponse(5)), nil, nil)
	lookup := &fakeLookup{err: errors.New("image service down")}
	session := flashcard.NewSession(mocks.RespondWith(batchResponse(5)), lookup, nil, builder, nil)

	require.NoError(t, session.GenerateFromTopic(context.Background(), "weather"))
	for _, card := range session.Deck() {
		assert.Empty(t, card.ImageRef)
	}
}

func TestPreviewCommitRoundTrip(t *testing.T) {
	t.Parallel()

	emitter := &mocks.Emitter{}
	session, lookup := newSession(mocks.RespondWith(singleResponse), emitter)
	ctx := context.Background()

	preview, err := session.GenerateSingleCard(ctx, "resilient", "character", domain.CardLevelMedium, domain.CardStyleCartoon)
	require.NoError(t, err)
	assert.Equal(t, "resilient", preview.Word)
	assert.Equal(t, "/rɪˈzɪl.i.ənt/", preview.Pronunciation)
	assert.Equal(t, domain.CardLevelMedium, preview.Level)
	assert.Empty(t, session.Deck(), "preview is not in the deck until committed")

	// The illustration prompt carries the style suffix.
	require.Len(t, lookup.prompts, 1)
	assert.Contains(t, lookup.prompts[0], "cartoon")
	assert.Contains(t, lookup.prompts[0], "no text")

	committed, err := session.CommitPreview(ctx)
	require.NoError(t, err)
	assert.Equal(t, preview.ID, committed.ID)
	assert.Equal(t, flashcard.StateReviewing, session.State())
	require.Len(t, session.Deck(), 1)
	assert.Nil(t, session.Preview())
	assert.Equal(t, 10, emitter.TotalXP())

	_, err = session.CommitPreview(ctx)
	assert.ErrorIs(t, err, flashcard.ErrNoPreview)
}

func TestDiscardPreview(t *testing.T) {
	t.Parallel()

	session, _ := newSession(mocks.RespondWith(singleResponse), &mocks.Emitter{})
	_, err := session.GenerateSingleCard(context.Background(), "resilient", "", domain.CardLevelEasy, domain.CardStyleMinimal)
	require.NoError(t, err)

	require.NoError(t, session.DiscardPreview())
	assert.Nil(t, session.Preview())
	assert.Empty(t, session.Deck())
	assert.ErrorIs(t, session.DiscardPreview(), flashcard.ErrNoPreview)
}

func TestGenerateSingleCardUnknownStyle(t *testing.T) {
	t.Parallel()

	session, _ := newSession(mocks.RespondWith(singleResponse), &mocks.Emitter{})
	_, err := session.GenerateSingleCard(context.Background(), "resilient", "", domain.CardLevelEasy, domain.CardStyle("oil_painting"))
	assert.ErrorIs(t, err, flashcard.ErrUnknownStyle)
}

func TestReviewPassAwardsXP(t *testing.T) {
	t.Parallel()

	emitter := &mocks.Emitter{}
	session := reviewingSession(t, emitter)
	ctx := context.Background()

	// Master the first four cards, miss the last one.
	for i := 0; i < 4; i++ {
		require.NoError(t, session.ReviewCurrent(ctx, true))
	}
	require.NoError(t, session.ReviewCurrent(ctx, false))

	assert.Equal(t, 20, emitter.TotalXP())
	deck := session.Deck()
	for i := 0; i < 4; i++ {
		assert.Equal(t, domain.CardStatusMastered, deck[i].Status)
	}
	assert.Equal(t, domain.CardStatusLearning, deck[4].Status)

	// The cursor stays on the last card instead of wrapping.
	assert.Equal(t, 4, session.CurrentIndex())
	assert.True(t, session.AtLastCard())
}

func TestReviewWithoutDeck(t *testing.T) {
	t.Parallel()

	session, _ := newSession(mocks.RespondWith(batchResponse(5)), &mocks.Emitter{})
	assert.ErrorIs(t, session.ReviewCurrent(context.Background(), true), flashcard.ErrNoDeck)
}

func TestToggleFlipNeverAdvances(t *testing.T) {
	t.Parallel()

	session := reviewingSession(t, &mocks.Emitter{})

	assert.True(t, session.ToggleFlip())
	assert.False(t, session.ToggleFlip())
	assert.True(t, session.ToggleFlip())
	assert.Equal(t, 0, session.CurrentIndex())

	// Reviewing resets the flip for the next card.
	require.NoError(t, session.ReviewCurrent(context.Background(), true))
	assert.False(t, session.Flipped())
}

func TestRestart(t *testing.T) {
	t.Parallel()

	session := reviewingSession(t, &mocks.Emitter{})
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, session.ReviewCurrent(ctx, true))
	}

	require.NoError(t, session.Restart())
	assert.Equal(t, 0, session.CurrentIndex())
	assert.Equal(t, flashcard.StateReviewing, session.State())
}

func TestBeginQuizAndReturn(t *testing.T) {
	t.Parallel()

	emitter := &mocks.Emitter{}
	gen := mocks.RespondWith(batchResponse(5))
	session, _ := newSession(gen, emitter)
	ctx := context.Background()
	require.NoError(t, session.GenerateFromTopic(ctx, "weather"))

	questions := make([]domain.QuizQuestion, 0, quiz.QuestionCount)
	for i := 0; i < quiz.QuestionCount; i++ {
		questions = append(questions, domain.QuizQuestion{
			ID:            fmt.Sprintf("q-%d", i),
			Question:      "Q?",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Explanation:   "x",
			Type:          domain.QuestionTypeMeaning,
			Difficulty:    domain.DifficultyEasy,
		})
	}
	rawQuestions, _ := json.Marshal(questions)
	gen.GenerateFn = func(context.Context, generation.Request) (json.RawMessage, error) {
		return rawQuestions, nil
	}

	quizSession, err := session.BeginQuiz(ctx)
	require.NoError(t, err)
	assert.Equal(t, flashcard.StateQuizzing, session.State())
	assert.Same(t, quizSession, session.Quiz())

	session.ReturnToReview()
	assert.Equal(t, flashcard.StateReviewing, session.State())
	assert.Nil(t, session.Quiz())
}

func TestBeginQuizFailureStaysReviewing(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(batchResponse(5))
	session, _ := newSession(gen, &mocks.Emitter{})
	ctx := context.Background()
	require.NoError(t, session.GenerateFromTopic(ctx, "weather"))

	gen.GenerateFn = func(context.Context, generation.Request) (json.RawMessage, error) {
		return nil, generation.ErrTransportFailure
	}
	_, err := session.BeginQuiz(ctx)
	assert.ErrorIs(t, err, generation.ErrTransportFailure)
	assert.Equal(t, flashcard.StateReviewing, session.State())
	assert.Nil(t, session.Quiz())
}
