package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studyhub-api/internal/api"
	"github.com/phrazzld/studyhub-api/internal/config"
	"github.com/phrazzld/studyhub-api/internal/events"
	"github.com/phrazzld/studyhub-api/internal/media"
	"github.com/phrazzld/studyhub-api/internal/platform/gemini"
	"github.com/phrazzld/studyhub-api/internal/progress"
	"github.com/phrazzld/studyhub-api/internal/service/analysis"
	"github.com/phrazzld/studyhub-api/internal/service/flashcard"
	"github.com/phrazzld/studyhub-api/internal/service/quiz"
	"github.com/phrazzld/studyhub-api/internal/service/speaking"
	"github.com/phrazzld/studyhub-api/internal/service/writing"
)

// application holds the wired dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	flashcardHandler *api.FlashcardHandler
	speakingHandler  *api.SpeakingHandler
	analysisHandler  *api.AnalysisHandler
	writingHandler   *api.WritingHandler
	progressHandler  *api.ProgressHandler
}

// newApplication constructs the generator, the session engines, and the
// progress tracker, and wires them into HTTP handlers. A missing API key
// fails here, before the server starts listening.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	generator, err := gemini.NewGenerator(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	emitter := events.NewInMemoryEmitter(log)
	tracker := progress.NewTracker(log)
	emitter.RegisterHandler(tracker)

	images := media.NewPollinationsLookup(cfg.Image, log)
	quizBuilder := quiz.NewBuilder(generator, emitter, log)
	flashcardSession := flashcard.NewSession(generator, images, emitter, quizBuilder, log)

	capture := &media.BufferCapture{}
	speakingSession := speaking.NewSession(generator, capture, emitter, log)

	player := media.NewPlayer(media.NoopSynthesizer{}, log)
	analysisEngine := analysis.NewEngine(generator, player, emitter, log)

	writingService := writing.NewService(generator, emitter, log)

	return &application{
		config:           cfg,
		logger:           log,
		flashcardHandler: api.NewFlashcardHandler(flashcardSession, log),
		speakingHandler:  api.NewSpeakingHandler(speakingSession, capture, log),
		analysisHandler:  api.NewAnalysisHandler(analysisEngine, log),
		writingHandler:   api.NewWritingHandler(writingService, log),
		progressHandler:  api.NewProgressHandler(tracker, log),
	}, nil
}
