package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danbi/vocadrill/internal/api/middleware"
	"github.com/danbi/vocadrill/internal/api/shared"
	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/quizgen"
)

// QuizHandler handles quiz generation and grading endpoints.
type QuizHandler struct {
	generator quizgen.QuizGenerationService
	grader    grading.GradingService
	logger    *slog.Logger
}

// NewQuizHandler creates a new QuizHandler with the given dependencies.
func NewQuizHandler(
	generator quizgen.QuizGenerationService,
	grader grading.GradingService,
	logger *slog.Logger,
) *QuizHandler {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if grader == nil {
		panic("grader cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &QuizHandler{
		generator: generator,
		grader:    grader,
		logger:    logger.With(slog.String("component", "quiz_handler")),
	}
}

// Generate handles POST /api/quiz/generate.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GenerateQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	direction, err := domain.ParseDirection(req.Direction)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	view, err := h.generator.Generate(r.Context(), userID, quizgen.GenerateRequest{
		Category:  req.Category,
		Direction: direction,
		Count:     req.Count,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// GenerateFromNotes handles POST /api/quiz/notes/generate.
func (h *QuizHandler) GenerateFromNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GenerateNotesQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	direction, err := domain.ParseDirection(req.Direction)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	view, err := h.generator.GenerateFromNotes(r.Context(), userID, quizgen.NotesGenerateRequest{
		Category:  req.Category,
		Direction: direction,
		Count:     req.Count,
		From:      req.From,
		To:        req.To,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// Grade handles POST /api/quiz/{sessionID}/grade.
func (h *QuizHandler) Grade(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID required")
		return
	}

	var req GradeQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	report, err := h.grader.Grade(r.Context(), sessionID, userID, req.Answers)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ToGradeQuizResponse(report))
}

// Stats handles GET /api/quiz/stats.
func (h *QuizHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.grader.Stats(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AttemptStatsResponse{
		Total:   stats.Total,
		Correct: stats.Correct,
		Wrong:   stats.Wrong,
	})
}
