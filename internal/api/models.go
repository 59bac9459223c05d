package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/notes"
)

// GenerateQuizRequest is the payload for generating a quiz from the
// word corpus. Count outside the accepted range falls back to the
// configured default rather than failing the request.
type GenerateQuizRequest struct {
	Category  string `json:"category"`
	Direction string `json:"direction" validate:"omitempty,oneof=forward reverse"`
	Count     int    `json:"count"`
}

// GenerateNotesQuizRequest is the payload for generating a quiz from
// the user's review notes.
type GenerateNotesQuizRequest struct {
	Category  string `json:"category"`
	Direction string `json:"direction" validate:"omitempty,oneof=forward reverse"`
	Count     int    `json:"count"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// GradeQuizRequest is the payload for grading a quiz session. Answers
// maps question index to chosen option index; absent indexes are
// graded as unanswered.
type GradeQuizRequest struct {
	Answers map[int]int `json:"answers"`
}

// QuestionResultResponse is one graded question in a grade response.
type QuestionResultResponse struct {
	Index        int      `json:"index"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	Chosen       *int     `json:"chosen"`
	CorrectIndex int      `json:"correct_index"`
	IsCorrect    bool     `json:"is_correct"`
	Explanation  string   `json:"explanation"`
	Example      string   `json:"example,omitempty"`
}

// GradeQuizResponse is the outcome of grading a full submission.
type GradeQuizResponse struct {
	SessionID string                   `json:"session_id"`
	Total     int                      `json:"total"`
	Correct   int                      `json:"correct"`
	Results   []QuestionResultResponse `json:"results"`
}

// ToGradeQuizResponse converts a grade report to its API representation.
func ToGradeQuizResponse(report *grading.GradeReport) GradeQuizResponse {
	results := make([]QuestionResultResponse, 0, len(report.Results))
	for _, res := range report.Results {
		results = append(results, QuestionResultResponse{
			Index:        res.Index,
			Prompt:       res.Prompt,
			Options:      res.Options,
			Chosen:       res.Chosen,
			CorrectIndex: res.CorrectIndex,
			IsCorrect:    res.IsCorrect,
			Explanation:  res.Explanation,
			Example:      res.Example,
		})
	}

	return GradeQuizResponse{
		SessionID: report.SessionID,
		Total:     report.Total,
		Correct:   report.Correct,
		Results:   results,
	}
}

// AttemptStatsResponse reports the user's lifetime attempt counters.
type AttemptStatsResponse struct {
	Total   int64 `json:"total"`
	Correct int64 `json:"correct"`
	Wrong   int64 `json:"wrong"`
}

// NoteResponse is the API representation of one review note joined
// with its word.
type NoteResponse struct {
	ID          uuid.UUID  `json:"id"`
	WordID      uuid.UUID  `json:"word_id"`
	Term        string     `json:"term"`
	Reading     string     `json:"reading,omitempty"`
	Meaning     string     `json:"meaning"`
	Example     string     `json:"example,omitempty"`
	Category    string     `json:"category,omitempty"`
	Note        string     `json:"note"`
	Starred     bool       `json:"starred"`
	WrongCount  int64      `json:"wrong_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastWrongAt *time.Time `json:"last_wrong_at,omitempty"`
}

// ToNoteResponse converts a note detail to its API representation.
func ToNoteResponse(n *domain.NoteDetail) NoteResponse {
	return NoteResponse{
		ID:          n.ID,
		WordID:      n.WordID,
		Term:        n.Term,
		Reading:     n.Reading,
		Meaning:     n.Meaning,
		Example:     n.Example,
		Category:    n.Category,
		Note:        n.Note,
		Starred:     n.Starred,
		WrongCount:  n.WrongCount,
		CreatedAt:   n.CreatedAt,
		LastWrongAt: n.LastWrongAt,
	}
}

// NoteListResponse is one page of review notes.
type NoteListResponse struct {
	Items []NoteResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
}

// ReviewNoteResponse is the API representation of a bare review note,
// returned after writes that do not need the joined word fields.
type ReviewNoteResponse struct {
	ID          uuid.UUID  `json:"id"`
	WordID      uuid.UUID  `json:"word_id"`
	Note        string     `json:"note"`
	Starred     bool       `json:"starred"`
	WrongCount  int64      `json:"wrong_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastWrongAt *time.Time `json:"last_wrong_at,omitempty"`
}

// ToReviewNoteResponse converts a review note to its API representation.
func ToReviewNoteResponse(n *domain.ReviewNote) ReviewNoteResponse {
	return ReviewNoteResponse{
		ID:          n.ID,
		WordID:      n.WordID,
		Note:        n.Note,
		Starred:     n.Starred,
		WrongCount:  n.WrongCount,
		CreatedAt:   n.CreatedAt,
		LastWrongAt: n.LastWrongAt,
	}
}

// UpdateNoteRequest is the payload for editing a note. A nil Starred
// leaves the flag untouched.
type UpdateNoteRequest struct {
	Note    string `json:"note"`
	Starred *bool  `json:"starred"`
}

// StarNoteRequest is the payload for setting the starred flag.
type StarNoteRequest struct {
	Starred bool `json:"starred"`
}

// BulkDeleteNotesRequest is the payload for deleting several notes at once.
type BulkDeleteNotesRequest struct {
	NoteIDs []uuid.UUID `json:"note_ids" validate:"required,min=1"`
}

// BulkDeleteNotesResponse partitions a bulk delete by outcome.
type BulkDeleteNotesResponse struct {
	Deleted  []uuid.UUID `json:"deleted"`
	NotFound []uuid.UUID `json:"not_found"`
	NotOwned []uuid.UUID `json:"not_owned"`
	Message  string      `json:"message"`
}

// ToBulkDeleteNotesResponse converts a bulk delete result to its API
// representation. Nil slices render as empty arrays.
func ToBulkDeleteNotesResponse(result *notes.BulkDeleteResult) BulkDeleteNotesResponse {
	resp := BulkDeleteNotesResponse{
		Deleted:  result.Deleted,
		NotFound: result.NotFound,
		NotOwned: result.NotOwned,
		Message:  result.Message,
	}
	if resp.Deleted == nil {
		resp.Deleted = []uuid.UUID{}
	}
	if resp.NotFound == nil {
		resp.NotFound = []uuid.UUID{}
	}
	if resp.NotOwned == nil {
		resp.NotOwned = []uuid.UUID{}
	}
	return resp
}
