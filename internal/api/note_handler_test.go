package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/service/notes"
)

// fakeNoteService returns canned results or errors.
type fakeNoteService struct {
	listing    *notes.Listing
	starred    []domain.NoteDetail
	note       *domain.ReviewNote
	bulkResult *notes.BulkDeleteResult
	err        error

	lastQuery notes.ListQuery
}

func (f *fakeNoteService) RecordWrong(_ context.Context, _, _ uuid.UUID) error {
	return f.err
}

func (f *fakeNoteService) List(
	_ context.Context,
	_ uuid.UUID,
	query notes.ListQuery,
) (*notes.Listing, error) {
	f.lastQuery = query
	return f.listing, f.err
}

func (f *fakeNoteService) ListStarred(_ context.Context, _ uuid.UUID) ([]domain.NoteDetail, error) {
	return f.starred, f.err
}

func (f *fakeNoteService) Update(
	_ context.Context, _, _ uuid.UUID, _ string, _ *bool,
) (*domain.ReviewNote, error) {
	return f.note, f.err
}

func (f *fakeNoteService) SetStarred(
	_ context.Context, _, _ uuid.UUID, _ bool,
) (*domain.ReviewNote, error) {
	return f.note, f.err
}

func (f *fakeNoteService) ToggleStarred(
	_ context.Context, _, _ uuid.UUID,
) (*domain.ReviewNote, error) {
	return f.note, f.err
}

func (f *fakeNoteService) Delete(_ context.Context, _, _ uuid.UUID) error {
	return f.err
}

func (f *fakeNoteService) DeleteMany(
	_ context.Context, _ []uuid.UUID, _ uuid.UUID,
) (*notes.BulkDeleteResult, error) {
	return f.bulkResult, f.err
}

func noteRouter(svc notes.NoteService) chi.Router {
	handler := NewNoteHandler(svc, nil)

	r := chi.NewRouter()
	r.Get("/api/notes", handler.List)
	r.Get("/api/notes/starred", handler.ListStarred)
	r.Patch("/api/notes/{noteID}", handler.Update)
	r.Patch("/api/notes/{noteID}/star", handler.SetStar)
	r.Patch("/api/notes/{noteID}/star/toggle", handler.ToggleStar)
	r.Delete("/api/notes/{noteID}", handler.Delete)
	r.Delete("/api/notes", handler.DeleteBulk)
	return r
}

func testNoteDetail() domain.NoteDetail {
	return domain.NoteDetail{
		ReviewNote: domain.ReviewNote{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			WordID:     uuid.New(),
			Note:       "keep studying",
			WrongCount: 3,
		},
		Term:    "apple",
		Meaning: "사과",
	}
}

func TestNoteHandlerList(t *testing.T) {
	detail := testNoteDetail()
	svc := &fakeNoteService{listing: &notes.Listing{
		Items: []domain.NoteDetail{detail},
		Total: 1,
		Page:  0,
		Size:  20,
	}}

	req := authedRequest(t, http.MethodGet,
		"/api/notes?category=fruit&date=1m&sort=last_wrong&page=2&size=50", nil)
	rec := httptest.NewRecorder()
	noteRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp NoteListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, detail.Term, resp.Items[0].Term)
	assert.Equal(t, int64(3), resp.Items[0].WrongCount)

	assert.Equal(t, "fruit", svc.lastQuery.Category)
	assert.Equal(t, notes.DateFilterOneMonth, svc.lastQuery.Date)
	assert.Equal(t, "last_wrong", svc.lastQuery.Sort)
	assert.Equal(t, 2, svc.lastQuery.Page)
	assert.Equal(t, 50, svc.lastQuery.Size)
}

func TestNoteHandlerListStarred(t *testing.T) {
	svc := &fakeNoteService{starred: []domain.NoteDetail{testNoteDetail()}}

	req := authedRequest(t, http.MethodGet, "/api/notes/starred", nil)
	rec := httptest.NewRecorder()
	noteRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []NoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 1)
}

func TestNoteHandlerUpdate(t *testing.T) {
	noteID := uuid.New()
	svc := &fakeNoteService{note: &domain.ReviewNote{
		ID:     noteID,
		WordID: uuid.New(),
		Note:   "edited",
	}}

	req := authedRequest(t, http.MethodPatch, "/api/notes/"+noteID.String(),
		UpdateNoteRequest{Note: "edited"})
	rec := httptest.NewRecorder()
	noteRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReviewNoteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "edited", resp.Note)
}

func TestNoteHandlerUpdateForeignNote(t *testing.T) {
	svc := &fakeNoteService{err: notes.ErrNotOwner}

	req := authedRequest(t, http.MethodPatch, "/api/notes/"+uuid.NewString(),
		UpdateNoteRequest{Note: "edited"})
	rec := httptest.NewRecorder()
	noteRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNoteHandlerInvalidNoteID(t *testing.T) {
	svc := &fakeNoteService{}

	req := authedRequest(t, http.MethodPatch, "/api/notes/not-a-uuid",
		UpdateNoteRequest{Note: "edited"})
	rec := httptest.NewRecorder()
	noteRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteHandlerDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		req := authedRequest(t, http.MethodDelete, "/api/notes/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		noteRouter(&fakeNoteService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		req := authedRequest(t, http.MethodDelete, "/api/notes/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		noteRouter(&fakeNoteService{err: notes.ErrNoteNotFound}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNoteHandlerDeleteBulk(t *testing.T) {
	deleted := uuid.New()
	missing := uuid.New()
	foreign := uuid.New()

	svc := &fakeNoteService{bulkResult: &notes.BulkDeleteResult{
		Deleted:  []uuid.UUID{deleted},
		NotFound: []uuid.UUID{missing},
		NotOwned: []uuid.UUID{foreign},
		Message:  "1 deleted, 1 not found, 1 not owned",
	}}

	req := authedRequest(t, http.MethodDelete, "/api/notes", BulkDeleteNotesRequest{
		NoteIDs: []uuid.UUID{deleted, missing, foreign},
	})
	rec := httptest.NewRecorder()
	noteRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BulkDeleteNotesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []uuid.UUID{deleted}, resp.Deleted)
	assert.Equal(t, []uuid.UUID{missing}, resp.NotFound)
	assert.Equal(t, []uuid.UUID{foreign}, resp.NotOwned)
	assert.Equal(t, "1 deleted, 1 not found, 1 not owned", resp.Message)
}

func TestNoteHandlerDeleteBulkEmptyIDs(t *testing.T) {
	req := authedRequest(t, http.MethodDelete, "/api/notes", BulkDeleteNotesRequest{})
	rec := httptest.NewRecorder()
	noteRouter(&fakeNoteService{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
