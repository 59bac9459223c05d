package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Attempt-specific validation errors
var (
	// ErrAttemptUserIDEmpty is returned when an attempt's user ID is empty or nil.
	ErrAttemptUserIDEmpty = errors.New("attempt user ID cannot be empty")

	// ErrAttemptWordIDEmpty is returned when an attempt's word ID is empty or nil.
	ErrAttemptWordIDEmpty = errors.New("attempt word ID cannot be empty")

	// ErrAttemptChosenIndex is returned when a chosen option index is out of range.
	ErrAttemptChosenIndex = errors.New("attempt chosen index out of range")
)

// AttemptResult is one graded question of one submission. Rows are
// append-only: they are never updated or deleted after creation.
// ChosenIndex is nil when the question was left unanswered.
type AttemptResult struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	WordID      uuid.UUID `json:"word_id"`
	ChosenIndex *int      `json:"chosen_index"`
	IsCorrect   bool      `json:"is_correct"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewAttemptResult creates a new AttemptResult and validates it.
func NewAttemptResult(userID, wordID uuid.UUID, chosenIndex *int, isCorrect bool) (*AttemptResult, error) {
	attempt := &AttemptResult{
		ID:          uuid.New(),
		UserID:      userID,
		WordID:      wordID,
		ChosenIndex: chosenIndex,
		IsCorrect:   isCorrect,
		CreatedAt:   time.Now().UTC(),
	}

	if err := attempt.Validate(); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Validate checks if the AttemptResult has valid data.
func (a *AttemptResult) Validate() error {
	if a.UserID == uuid.Nil {
		return ErrAttemptUserIDEmpty
	}

	if a.WordID == uuid.Nil {
		return ErrAttemptWordIDEmpty
	}

	if a.ChosenIndex != nil && (*a.ChosenIndex < 0 || *a.ChosenIndex >= OptionCount) {
		return ErrAttemptChosenIndex
	}

	return nil
}

// AttemptStats aggregates a user's lifetime attempt counters.
type AttemptStats struct {
	Total   int64 `json:"total"`
	Correct int64 `json:"correct"`
	Wrong   int64 `json:"wrong"`
}
