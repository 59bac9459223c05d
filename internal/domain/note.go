package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-note-specific validation errors
var (
	// ErrNoteUserIDEmpty is returned when a note's user ID is empty or nil.
	ErrNoteUserIDEmpty = errors.New("note user ID cannot be empty")

	// ErrNoteWordIDEmpty is returned when a note's word ID is empty or nil.
	ErrNoteWordIDEmpty = errors.New("note word ID cannot be empty")

	// ErrNoteWrongCountNegative is returned when a wrong count goes below zero.
	ErrNoteWrongCountNegative = errors.New("note wrong count cannot be negative")
)

// ReviewNote is the per-user-per-word reinforcement ledger row. At most
// one note exists per (UserID, WordID) pair; WrongCount grows by exactly
// one per distinct wrong attempt and LastWrongAt tracks the latest one.
// Note text and Starred are user-edited.
type ReviewNote struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	WordID      uuid.UUID  `json:"word_id"`
	Note        string     `json:"note"`
	Starred     bool       `json:"starred"`
	WrongCount  int64      `json:"wrong_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastWrongAt *time.Time `json:"last_wrong_at"`
}

// NewReviewNote creates a fresh ledger row for a (user, word) pair with
// a zero wrong count. Callers recording a wrong event increment it.
func NewReviewNote(userID, wordID uuid.UUID) (*ReviewNote, error) {
	note := &ReviewNote{
		ID:        uuid.New(),
		UserID:    userID,
		WordID:    wordID,
		CreatedAt: time.Now().UTC(),
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the ReviewNote has valid data.
func (n *ReviewNote) Validate() error {
	if n.UserID == uuid.Nil {
		return ErrNoteUserIDEmpty
	}

	if n.WordID == uuid.Nil {
		return ErrNoteWordIDEmpty
	}

	if n.WrongCount < 0 {
		return ErrNoteWrongCountNegative
	}

	return nil
}

// NoteDetail is a ReviewNote joined with the denormalized word fields
// the listing API serves.
type NoteDetail struct {
	ReviewNote

	Term     string `json:"term"`
	Reading  string `json:"reading,omitempty"`
	Meaning  string `json:"meaning"`
	Example  string `json:"example,omitempty"`
	Category string `json:"category,omitempty"`
}
