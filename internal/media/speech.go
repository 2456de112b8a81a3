package media

import (
	"context"
	"log/slog"
	"sync"
)

// Synthesizer is the external text-to-speech collaborator. Speak starts an
// utterance and returns immediately; completion is reported back to the
// owning Player via Finished.
type Synthesizer interface {
	Speak(ctx context.Context, text, lang string) error
	Cancel()
}

// playState is the two-state machine behind the play/cancel toggle.
type playState int

const (
	stateIdle playState = iota
	statePlaying
)

// Player wraps a Synthesizer with toggle semantics: at most one utterance is
// conceptually in flight, and invoking Toggle while playing cancels instead
// of queueing.
type Player struct {
	mu     sync.Mutex
	state  playState
	synth  Synthesizer
	logger *slog.Logger
}

// NewPlayer creates an idle player over the given synthesizer.
func NewPlayer(synth Synthesizer, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		synth:  synth,
		logger: logger.With(slog.String("component", "speech_player")),
	}
}

// Toggle starts speaking the text when idle, or cancels the current
// utterance when playing. It reports whether playback is now active.
func (p *Player) Toggle(ctx context.Context, text, lang string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == statePlaying {
		p.synth.Cancel()
		p.state = stateIdle
		p.logger.DebugContext(ctx, "playback cancelled")
		return false, nil
	}

	if err := p.synth.Speak(ctx, text, lang); err != nil {
		return false, err
	}
	p.state = statePlaying
	p.logger.DebugContext(ctx, "playback started", slog.String("lang", lang))
	return true, nil
}

// Finished moves the player back to idle; the synthesizer calls this when an
// utterance completes on its own.
func (p *Player) Finished() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = stateIdle
}

// Playing reports whether an utterance is in flight.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == statePlaying
}

// Stop cancels playback if any; unlike Toggle it never starts one.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != statePlaying {
		return ErrNotPlaying
	}
	p.synth.Cancel()
	p.state = stateIdle
	return nil
}
