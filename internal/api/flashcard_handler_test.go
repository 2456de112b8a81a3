package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studyhub-api/internal/api"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/mocks"
	"github.com/phrazzld/studyhub-api/internal/service/flashcard"
	"github.com/phrazzld/studyhub-api/internal/service/quiz"
)

const deckJSON = `[
	{"word":"cloud","pronunciation":"/klaʊd/","meaning":"đám mây","example":"The cloud is white.","imageKeyword":"cloud"},
	{"word":"rain","pronunciation":"/reɪn/","meaning":"mưa","example":"It rains a lot.","imageKeyword":"rain"},
	{"word":"storm","pronunciation":"/stɔːm/","meaning":"bão","example":"A storm is coming.","imageKeyword":"storm"},
	{"word":"wind","pronunciation":"/wɪnd/","meaning":"gió","example":"The wind blows.","imageKeyword":"wind"},
	{"word":"sun","pronunciation":"/sʌn/","meaning":"mặt trời","example":"The sun is bright.","imageKeyword":"sun"}
]`

func newHandler(gen *mocks.Generator) *api.FlashcardHandler {
	builder := quiz.NewBuilder(gen, nil, nil)
	session := flashcard.NewSession(gen, nil, nil, builder, nil)
	return api.NewFlashcardHandler(session, nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestGenerateDeckFromTopic(t *testing.T) {
	t.Parallel()

	handler := newHandler(mocks.RespondWith(deckJSON))
	rr := postJSON(t, handler.GenerateDeck, `{"topic":"weather"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.DeckResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "reviewing", resp.State)
	assert.Len(t, resp.Cards, 5)
	assert.Equal(t, 0, resp.CurrentIndex)
}

func TestGenerateDeckRejectsAmbiguousRequest(t *testing.T) {
	t.Parallel()

	handler := newHandler(mocks.RespondWith(deckJSON))

	// Both topic and words.
	rr := postJSON(t, handler.GenerateDeck, `{"topic":"weather","words":["cloud"]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Neither.
	rr = postJSON(t, handler.GenerateDeck, `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGenerateDeckUpstreamFailure(t *testing.T) {
	t.Parallel()

	handler := newHandler(mocks.FailWith(generation.ErrTransportFailure))
	rr := postJSON(t, handler.GenerateDeck, `{"topic":"weather"}`)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	// The raw error never leaks to the client.
	assert.NotContains(t, rr.Body.String(), "transport")
}

func TestReviewWithoutDeckConflicts(t *testing.T) {
	t.Parallel()

	handler := newHandler(mocks.RespondWith(deckJSON))
	rr := postJSON(t, handler.Review, `{"mastered":true}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestQuizFlowHidesAnswersUntilSelected(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(deckJSON)
	handler := newHandler(gen)
	require.Equal(t, http.StatusOK, postJSON(t, handler.GenerateDeck, `{"topic":"weather"}`).Code)

	questions := `[
		{"id":"q-0","question":"Q0?","options":["A","B","C","D"],"correctAnswer":"A","explanation":"x","type":"meaning","difficulty":"easy"},
		{"id":"q-1","question":"Q1?","options":["A","B","C","D"],"correctAnswer":"B","explanation":"y","type":"meaning","difficulty":"easy"}
	]`
	gen.GenerateFn = func(context.Context, generation.Request) (json.RawMessage, error) {
		return json.RawMessage(questions), nil
	}

	rr := postJSON(t, handler.BeginQuiz, ``)
	require.Equal(t, http.StatusOK, rr.Code)
	var state api.QuizResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	require.Len(t, state.Questions, 2)
	assert.Empty(t, state.Questions[0].CorrectAnswer, "answers hidden before selection")

	rr = postJSON(t, handler.AnswerQuiz, `{"option":"A"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &state))
	assert.Equal(t, "A", state.Questions[0].CorrectAnswer, "answered question reveals its answer")
	assert.Empty(t, state.Questions[1].CorrectAnswer)
	assert.Equal(t, 1, state.Score)
}

func TestAnswerQuizWithoutQuiz(t *testing.T) {
	t.Parallel()

	handler := newHandler(mocks.RespondWith(deckJSON))
	rr := postJSON(t, handler.AnswerQuiz, `{"option":"A"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
