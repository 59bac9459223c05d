package grading

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/store"
)

// AttemptRepository defines the interface for repositories that persist
// attempt rows and support transactions.
type AttemptRepository interface {
	// Create saves a new attempt row.
	Create(ctx context.Context, attempt *domain.AttemptResult) error

	// Stats returns the user's lifetime attempt counters.
	Stats(ctx context.Context, userID uuid.UUID) (domain.AttemptStats, error)

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) AttemptRepository
}

// NoteRepository defines the interface for repositories that apply
// wrong-answer reinforcement and support transactions.
type NoteRepository interface {
	// RecordWrong applies one wrong event to the (user, word) pair.
	RecordWrong(ctx context.Context, userID, wordID uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NoteRepository
}

// NewAttemptRepositoryAdapter creates a new adapter that allows a
// store.AttemptStore to be used where an AttemptRepository is expected.
func NewAttemptRepositoryAdapter(attemptStore store.AttemptStore) AttemptRepository {
	return &attemptRepositoryAdapter{attemptStore: attemptStore}
}

// attemptRepositoryAdapter adapts a store.AttemptStore to the
// AttemptRepository interface
type attemptRepositoryAdapter struct {
	attemptStore store.AttemptStore
}

// Create implements AttemptRepository.Create
func (a *attemptRepositoryAdapter) Create(ctx context.Context, attempt *domain.AttemptResult) error {
	return a.attemptStore.Create(ctx, attempt)
}

// Stats implements AttemptRepository.Stats
func (a *attemptRepositoryAdapter) Stats(ctx context.Context, userID uuid.UUID) (domain.AttemptStats, error) {
	return a.attemptStore.Stats(ctx, userID)
}

// WithTx implements AttemptRepository.WithTx
func (a *attemptRepositoryAdapter) WithTx(tx *sql.Tx) AttemptRepository {
	return &attemptRepositoryAdapter{attemptStore: a.attemptStore.WithTx(tx)}
}

// NewNoteRepositoryAdapter creates a new adapter that allows a
// store.NoteStore to be used where a NoteRepository is expected.
func NewNoteRepositoryAdapter(noteStore store.NoteStore) NoteRepository {
	return &noteRepositoryAdapter{noteStore: noteStore}
}

// noteRepositoryAdapter adapts a store.NoteStore to the NoteRepository
// interface
type noteRepositoryAdapter struct {
	noteStore store.NoteStore
}

// RecordWrong implements NoteRepository.RecordWrong
func (a *noteRepositoryAdapter) RecordWrong(ctx context.Context, userID, wordID uuid.UUID) error {
	return a.noteStore.RecordWrong(ctx, userID, wordID)
}

// WithTx implements NoteRepository.WithTx
func (a *noteRepositoryAdapter) WithTx(tx *sql.Tx) NoteRepository {
	return &noteRepositoryAdapter{noteStore: a.noteStore.WithTx(tx)}
}
