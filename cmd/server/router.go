package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	apiMiddleware "github.com/phrazzld/studyhub-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	if len(app.config.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: app.config.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler)
	}

	r.Route("/api", func(r chi.Router) {
		// Flashcard deck and review
		r.Get("/flashcards", app.flashcardHandler.GetState)
		r.Post("/flashcards/deck", app.flashcardHandler.GenerateDeck)
		r.Post("/flashcards/card", app.flashcardHandler.GenerateCard)
		r.Post("/flashcards/card/commit", app.flashcardHandler.CommitPreview)
		r.Delete("/flashcards/card", app.flashcardHandler.DiscardPreview)
		r.Post("/flashcards/review", app.flashcardHandler.Review)
		r.Post("/flashcards/flip", app.flashcardHandler.Flip)
		r.Post("/flashcards/restart", app.flashcardHandler.Restart)

		// Quiz over the deck
		r.Post("/flashcards/quiz", app.flashcardHandler.BeginQuiz)
		r.Post("/flashcards/quiz/answer", app.flashcardHandler.AnswerQuiz)
		r.Post("/flashcards/quiz/advance", app.flashcardHandler.AdvanceQuiz)
		r.Post("/flashcards/quiz/exit", app.flashcardHandler.ExitQuiz)

		// Speaking practice
		r.Get("/speaking", app.speakingHandler.GetState)
		r.Post("/speaking/mode", app.speakingHandler.SetMode)
		r.Post("/speaking/free", app.speakingHandler.SubmitFree)
		r.Post("/speaking/dialogue", app.speakingHandler.GenerateDialogue)
		r.Post("/speaking/dialogue/{lineID}/submit", app.speakingHandler.SubmitForLine)
		r.Post("/speaking/chat", app.speakingHandler.SubmitTurn)

		// Content analysis
		r.Get("/analysis", app.analysisHandler.GetResult)
		r.Post("/analysis", app.analysisHandler.Analyze)
		r.Post("/analysis/audio", app.analysisHandler.ToggleAudio)

		// Writing assessment
		r.Post("/writing", app.writingHandler.Assess)

		// Progress
		r.Get("/progress", app.progressHandler.GetStats)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
