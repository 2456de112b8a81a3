package analysis_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studyhub-api/internal/domain"
	"github.com/phrazzld/studyhub-api/internal/generation"
	"github.com/phrazzld/studyhub-api/internal/media"
	"github.com/phrazzld/studyhub-api/internal/mocks"
	"github.com/phrazzld/studyhub-api/internal/service/analysis"
)

// fakeSynth records Speak calls without doing any audio work.
type fakeSynth struct {
	spoken    []string
	cancelled int
}

func (f *fakeSynth) Speak(_ context.Context, text, _ string) error {
	f.spoken = append(f.spoken, text)
	return nil
}

func (f *fakeSynth) Cancel() { f.cancelled++ }

var _ media.Synthesizer = (*fakeSynth)(nil)

const fullResponse = `{
	"summary": "Bài đọc nói về quang hợp.",
	"keywords": ["photosynthesis", "chlorophyll"],
	"rootNode": {
		"id": "root", "label": "Photosynthesis", "color": "#4f46e5",
		"children": [
			{"id": "n1", "label": "Inputs", "color": "#22c55e", "children": [
				{"id": "n1a", "label": "Sunlight", "color": "#eab308"}
			]}
		]
	}
}`

func newEngine(gen *mocks.Generator, emitter *mocks.Emitter) (*analysis.Engine, *fakeSynth) {
	synth := &fakeSynth{}
	player := media.NewPlayer(synth, nil)
	return analysis.NewEngine(gen, player, emitter, nil), synth
}

func textInput(text string) analysis.Input {
	return analysis.Input{Text: text}
}

func TestAnalyzeBothModes(t *testing.T) {
	t.Parallel()

	emitter := &mocks.Emitter{}
	engine, _ := newEngine(mocks.RespondWith(fullResponse), emitter)

	result, err := engine.Analyze(context.Background(), textInput("Plants convert light into energy."),
		domain.AnalysisOptions{SummaryLength: domain.SummaryMedium, Mode: domain.ModeBoth})
	require.NoError(t, err)

	assert.Equal(t, "Bài đọc nói về quang hợp.", result.Summary)
	assert.Equal(t, []string{"photosynthesis", "chlorophyll"}, result.Keywords)
	require.NotNil(t, result.RootNode)
	assert.Equal(t, "Photosynthesis", result.RootNode.Label)
	assert.Equal(t, 30, emitter.TotalXP())
	assert.Same(t, result, engine.Result())
}

func TestSummaryModeDropsTree(t *testing.T) {
	t.Parallel()

	// The generator ignored the instruction and sent a tree anyway.
	engine, _ := newEngine(mocks.RespondWith(fullResponse), &mocks.Emitter{})

	result, err := engine.Analyze(context.Background(), textInput("material"),
		domain.AnalysisOptions{SummaryLength: domain.SummaryShort, Mode: domain.ModeSummary})
	require.NoError(t, err)

	assert.Nil(t, result.RootNode)
	assert.NotEmpty(t, result.Summary)
}

func TestMindmapModeKeepsSummary(t *testing.T) {
	t.Parallel()

	engine, _ := newEngine(mocks.RespondWith(fullResponse), &mocks.Emitter{})

	result, err := engine.Analyze(context.Background(), textInput("material"),
		domain.AnalysisOptions{Mode: domain.ModeMindmap})
	require.NoError(t, err)

	require.NotNil(t, result.RootNode)
	assert.NotEmpty(t, result.Summary, "summary rides along even in mindmap mode")
}

func TestOverdeepTreeIsClamped(t *testing.T) {
	t.Parallel()

	// Four levels where the contract allows three.
	raw := `{
		"summary": "s", "keywords": [],
		"rootNode": {"id": "r", "label": "L1", "color": "#fff", "children": [
			{"id": "a", "label": "L2", "color": "#fff", "children": [
				{"id": "b", "label": "L3", "color": "#fff", "children": [
					{"id": "c", "label": "L4", "color": "#fff"}
				]}
			]}
		]}
	}`
	engine, _ := newEngine(mocks.RespondWith(raw), &mocks.Emitter{})

	result, err := engine.Analyze(context.Background(), textInput("material"),
		domain.AnalysisOptions{Mode: domain.ModeBoth})
	require.NoError(t, err)

	level3 := result.RootNode.Children[0].Children[0]
	assert.Equal(t, "L3", level3.Label)
	assert.Empty(t, level3.Children)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	t.Parallel()

	engine, _ := newEngine(mocks.RespondWith(fullResponse), &mocks.Emitter{})
	_, err := engine.Analyze(context.Background(), textInput("  "), domain.AnalysisOptions{})
	assert.ErrorIs(t, err, generation.ErrEmptyInput)
}

func TestAnalyzeFailureKeepsResult(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(fullResponse)
	engine, _ := newEngine(gen, &mocks.Emitter{})
	ctx := context.Background()
	first, err := engine.Analyze(ctx, textInput("material"), domain.AnalysisOptions{Mode: domain.ModeBoth})
	require.NoError(t, err)

	gen.GenerateFn = func(context.Context, generation.Request) (json.RawMessage, error) {
		return json.RawMessage(`{"summary": "", "keywords": []}`), nil
	}
	_, err = engine.Analyze(ctx, textInput("other material"), domain.AnalysisOptions{Mode: domain.ModeBoth})
	assert.ErrorIs(t, err, generation.ErrSchemaViolation)
	assert.Same(t, first, engine.Result())
}

func TestImageInputGoesOutAsBlob(t *testing.T) {
	t.Parallel()

	gen := mocks.RespondWith(fullResponse)
	engine, _ := newEngine(gen, &mocks.Emitter{})

	_, err := engine.Analyze(context.Background(),
		analysis.Input{Image: []byte{0xff, 0xd8, 0xff}},
		domain.AnalysisOptions{Mode: domain.ModeSummary})
	require.NoError(t, err)

	require.Len(t, gen.Requests, 1)
	require.Len(t, gen.Requests[0].Parts, 2)
	assert.Equal(t, "image/jpeg", gen.Requests[0].Parts[0].MIMEType)
	assert.NotEmpty(t, gen.Requests[0].Parts[1].Text)
}

func TestPlaySummaryAudioToggles(t *testing.T) {
	t.Parallel()

	engine, synth := newEngine(mocks.RespondWith(fullResponse), &mocks.Emitter{})
	ctx := context.Background()

	_, err := engine.PlaySummaryAudio(ctx, "vi")
	assert.ErrorIs(t, err, analysis.ErrNoResult)

	_, err = engine.Analyze(ctx, textInput("material"), domain.AnalysisOptions{Mode: domain.ModeSummary})
	require.NoError(t, err)

	playing, err := engine.PlaySummaryAudio(ctx, "vi")
	require.NoError(t, err)
	assert.True(t, playing)
	require.Len(t, synth.spoken, 1)
	assert.Equal(t, "Bài đọc nói về quang hợp.", synth.spoken[0])

	// A second toggle cancels instead of queueing.
	playing, err = engine.PlaySummaryAudio(ctx, "vi")
	require.NoError(t, err)
	assert.False(t, playing)
	assert.Equal(t, 1, synth.cancelled)

	assert.ErrorIs(t, engine.StopAudio(), media.ErrNotPlaying)
}
