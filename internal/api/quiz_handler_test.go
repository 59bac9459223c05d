package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbi/vocadrill/internal/api/shared"
	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/quizgen"
)

// fakeGenerator returns canned views or errors.
type fakeGenerator struct {
	view    *domain.QuizView
	err     error
	lastReq quizgen.GenerateRequest
}

func (f *fakeGenerator) Generate(
	_ context.Context,
	_ uuid.UUID,
	req quizgen.GenerateRequest,
) (*domain.QuizView, error) {
	f.lastReq = req
	return f.view, f.err
}

func (f *fakeGenerator) GenerateFromNotes(
	_ context.Context,
	_ uuid.UUID,
	_ quizgen.NotesGenerateRequest,
) (*domain.QuizView, error) {
	return f.view, f.err
}

// fakeGrader returns canned reports or errors.
type fakeGrader struct {
	report *grading.GradeReport
	stats  domain.AttemptStats
	err    error
}

func (f *fakeGrader) Grade(
	_ context.Context,
	_ string,
	_ uuid.UUID,
	_ map[int]int,
) (*grading.GradeReport, error) {
	return f.report, f.err
}

func (f *fakeGrader) Stats(_ context.Context, _ uuid.UUID) (domain.AttemptStats, error) {
	return f.stats, f.err
}

func testView() *domain.QuizView {
	return &domain.QuizView{
		SessionID: uuid.NewString(),
		Category:  "all",
		Direction: domain.DirectionForward,
		Questions: []domain.QuizViewItem{
			{Prompt: "apple", Options: []string{"사과", "바나나", "포도", "수박"}},
		},
	}
}

// authedRequest builds a request carrying an authenticated user ID.
func authedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
	return req.WithContext(ctx)
}

func TestQuizHandlerGenerate(t *testing.T) {
	generator := &fakeGenerator{view: testView()}
	handler := NewQuizHandler(generator, &fakeGrader{}, nil)

	req := authedRequest(t, http.MethodPost, "/api/quiz/generate", GenerateQuizRequest{
		Category:  "fruit",
		Direction: "reverse",
		Count:     5,
	})
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.QuizView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, generator.view.SessionID, resp.SessionID)
	require.Len(t, resp.Questions, 1)
	assert.Len(t, resp.Questions[0].Options, domain.OptionCount)

	assert.Equal(t, domain.DirectionReverse, generator.lastReq.Direction)
	assert.Equal(t, 5, generator.lastReq.Count)
}

func TestQuizHandlerGenerateUnauthenticated(t *testing.T) {
	handler := NewQuizHandler(&fakeGenerator{view: testView()}, &fakeGrader{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/quiz/generate", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuizHandlerGenerateBadDirection(t *testing.T) {
	handler := NewQuizHandler(&fakeGenerator{view: testView()}, &fakeGrader{}, nil)

	req := authedRequest(t, http.MethodPost, "/api/quiz/generate", map[string]string{
		"direction": "sideways",
	})
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuizHandlerGenerateInsufficientWords(t *testing.T) {
	handler := NewQuizHandler(
		&fakeGenerator{err: quizgen.ErrInsufficientWords},
		&fakeGrader{}, nil)

	req := authedRequest(t, http.MethodPost, "/api/quiz/generate", GenerateQuizRequest{})
	rec := httptest.NewRecorder()
	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "Not enough words")
}

func TestQuizHandlerGrade(t *testing.T) {
	chosen := 1
	grader := &fakeGrader{report: &grading.GradeReport{
		SessionID: "session-1",
		Total:     2,
		Correct:   1,
		Results: []grading.QuestionResult{
			{Index: 0, Chosen: &chosen, CorrectIndex: 1, IsCorrect: true, Explanation: "Correct."},
			{Index: 1, Chosen: nil, CorrectIndex: 0, IsCorrect: false, Explanation: "Not answered."},
		},
	}}
	handler := NewQuizHandler(&fakeGenerator{}, grader, nil)

	r := chi.NewRouter()
	r.Post("/api/quiz/{sessionID}/grade", handler.Grade)

	req := authedRequest(t, http.MethodPost, "/api/quiz/session-1/grade", GradeQuizRequest{
		Answers: map[int]int{0: 1},
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GradeQuizResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.Correct)
	require.Len(t, resp.Results, 2)
	assert.Nil(t, resp.Results[1].Chosen)
}

func TestQuizHandlerGradeExpiredSession(t *testing.T) {
	handler := NewQuizHandler(&fakeGenerator{},
		&fakeGrader{err: grading.ErrSessionExpired}, nil)

	r := chi.NewRouter()
	r.Post("/api/quiz/{sessionID}/grade", handler.Grade)

	req := authedRequest(t, http.MethodPost, "/api/quiz/stale/grade", GradeQuizRequest{})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusGone, rec.Code)
}

func TestQuizHandlerStats(t *testing.T) {
	handler := NewQuizHandler(&fakeGenerator{},
		&fakeGrader{stats: domain.AttemptStats{Total: 4, Correct: 3, Wrong: 1}}, nil)

	req := authedRequest(t, http.MethodGet, "/api/quiz/stats", nil)
	rec := httptest.NewRecorder()
	handler.Stats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AttemptStatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(4), resp.Total)
	assert.Equal(t, int64(1), resp.Wrong)
}
