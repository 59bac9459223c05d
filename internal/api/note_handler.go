package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/api/middleware"
	"github.com/danbi/vocadrill/internal/api/shared"
	"github.com/danbi/vocadrill/internal/service/notes"
)

// NoteHandler handles review-note endpoints.
type NoteHandler struct {
	noteService notes.NoteService
	logger      *slog.Logger
}

// NewNoteHandler creates a new NoteHandler with the given dependencies.
func NewNoteHandler(noteService notes.NoteService, logger *slog.Logger) *NoteHandler {
	if noteService == nil {
		panic("noteService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &NoteHandler{
		noteService: noteService,
		logger:      logger.With(slog.String("component", "note_handler")),
	}
}

// List handles GET /api/notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	q := r.URL.Query()
	query := notes.ListQuery{
		Category: q.Get("category"),
		Date:     notes.DateFilter(q.Get("date")),
		From:     q.Get("from"),
		To:       q.Get("to"),
		Sort:     q.Get("sort"),
	}
	query.Page, _ = strconv.Atoi(q.Get("page"))
	query.Size, _ = strconv.Atoi(q.Get("size"))

	listing, err := h.noteService.List(r.Context(), userID, query)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]NoteResponse, 0, len(listing.Items))
	for i := range listing.Items {
		items = append(items, ToNoteResponse(&listing.Items[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NoteListResponse{
		Items: items,
		Total: listing.Total,
		Page:  listing.Page,
		Size:  listing.Size,
	})
}

// ListStarred handles GET /api/notes/starred.
func (h *NoteHandler) ListStarred(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	starred, err := h.noteService.ListStarred(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	items := make([]NoteResponse, 0, len(starred))
	for i := range starred {
		items = append(items, ToNoteResponse(&starred[i]))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// Update handles PATCH /api/notes/{noteID}.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	noteID, ok := h.parseNoteID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := h.noteService.Update(r.Context(), noteID, userID, req.Note, req.Starred)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ToReviewNoteResponse(note))
}

// SetStar handles PATCH /api/notes/{noteID}/star.
func (h *NoteHandler) SetStar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	noteID, ok := h.parseNoteID(w, r)
	if !ok {
		return
	}

	var req StarNoteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	note, err := h.noteService.SetStarred(r.Context(), noteID, userID, req.Starred)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ToReviewNoteResponse(note))
}

// ToggleStar handles PATCH /api/notes/{noteID}/star/toggle.
func (h *NoteHandler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	noteID, ok := h.parseNoteID(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.ToggleStarred(r.Context(), noteID, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ToReviewNoteResponse(note))
}

// Delete handles DELETE /api/notes/{noteID}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	noteID, ok := h.parseNoteID(w, r)
	if !ok {
		return
	}

	if err := h.noteService.Delete(r.Context(), noteID, userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteBulk handles DELETE /api/notes.
func (h *NoteHandler) DeleteBulk(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req BulkDeleteNotesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.noteService.DeleteMany(r.Context(), req.NoteIDs, userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ToBulkDeleteNotesResponse(result))
}

// parseNoteID extracts and parses the noteID URL parameter, responding
// with 400 on failure.
func (h *NoteHandler) parseNoteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	noteID, err := uuid.Parse(chi.URLParam(r, "noteID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid note ID")
		return uuid.Nil, false
	}
	return noteID, true
}
