package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/danbi/vocadrill/internal/api"
	apiMiddleware "github.com/danbi/vocadrill/internal/api/middleware"
	"github.com/danbi/vocadrill/internal/service/auth"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/notes"
	"github.com/danbi/vocadrill/internal/service/quizgen"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func setupRouter(
	generator quizgen.QuizGenerationService,
	grader grading.GradingService,
	noteService notes.NoteService,
	jwtService auth.JWTService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtService)
	quizHandler := api.NewQuizHandler(generator, grader, logger)
	noteHandler := api.NewNoteHandler(noteService, logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Quiz endpoints
			r.Post("/quiz/generate", quizHandler.Generate)
			r.Post("/quiz/notes/generate", quizHandler.GenerateFromNotes)
			r.Post("/quiz/{sessionID}/grade", quizHandler.Grade)
			r.Get("/quiz/stats", quizHandler.Stats)

			// Review note endpoints
			r.Get("/notes", noteHandler.List)
			r.Get("/notes/starred", noteHandler.ListStarred)
			r.Patch("/notes/{noteID}", noteHandler.Update)
			r.Patch("/notes/{noteID}/star", noteHandler.SetStar)
			r.Patch("/notes/{noteID}/star/toggle", noteHandler.ToggleStar)
			r.Delete("/notes/{noteID}", noteHandler.Delete)
			r.Delete("/notes", noteHandler.DeleteBulk)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
