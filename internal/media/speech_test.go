package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studyhub-api/internal/media"
)

type fakeSynth struct {
	spoken   []string
	cancels  int
	speakErr error
}

func (f *fakeSynth) Speak(_ context.Context, text, _ string) error {
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, text)
	return nil
}

func (f *fakeSynth) Cancel() { f.cancels++ }

func TestPlayerToggleStartsThenCancels(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{}
	player := media.NewPlayer(synth, nil)
	ctx := context.Background()

	playing, err := player.Toggle(ctx, "a short summary", "en-US")
	require.NoError(t, err)
	assert.True(t, playing)
	assert.True(t, player.Playing())
	assert.Equal(t, []string{"a short summary"}, synth.spoken)

	// Second invocation while playing stops playback, never queues.
	playing, err = player.Toggle(ctx, "a short summary", "en-US")
	require.NoError(t, err)
	assert.False(t, playing)
	assert.False(t, player.Playing())
	assert.Equal(t, 1, synth.cancels)
	assert.Len(t, synth.spoken, 1)
}

func TestPlayerFinishedReturnsToIdle(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{}
	player := media.NewPlayer(synth, nil)

	_, err := player.Toggle(context.Background(), "text", "vi-VN")
	require.NoError(t, err)

	player.Finished()
	assert.False(t, player.Playing())

	// A toggle after natural completion starts fresh instead of cancelling.
	playing, err := player.Toggle(context.Background(), "text", "vi-VN")
	require.NoError(t, err)
	assert.True(t, playing)
	assert.Equal(t, 0, synth.cancels)
}

func TestPlayerSpeakFailureStaysIdle(t *testing.T) {
	t.Parallel()

	synth := &fakeSynth{speakErr: errors.New("no voices")}
	player := media.NewPlayer(synth, nil)

	playing, err := player.Toggle(context.Background(), "text", "en-US")
	assert.Error(t, err)
	assert.False(t, playing)
	assert.False(t, player.Playing())
}

func TestPlayerStopWhenIdle(t *testing.T) {
	t.Parallel()

	player := media.NewPlayer(&fakeSynth{}, nil)
	assert.ErrorIs(t, player.Stop(), media.ErrNotPlaying)
}

func TestStyledPrompt(t *testing.T) {
	t.Parallel()

	got := media.StyledPrompt("a cat reading a book", "cartoon")
	assert.Equal(t, "a cat reading a book, cute cartoon, flat design, colorful, vector art, simple, no text, no letters", got)

	// Unknown styles fall back to a generic educational look.
	got = media.StyledPrompt("a cat", "oil_painting")
	assert.Contains(t, got, "educational illustration")
}
