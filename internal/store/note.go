package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// NoteSort selects the ordering of a note listing.
type NoteSort string

const (
	// NoteSortLatest orders by entry-creation time, newest first.
	NoteSortLatest NoteSort = "latest"

	// NoteSortLastWrong orders by last-wrong time, newest first.
	NoteSortLastWrong NoteSort = "last_wrong"
)

// NoteFilter narrows and pages a note listing. From/To bound the
// last-wrong timestamp (To exclusive); nil means unbounded. Category ""
// means any category.
type NoteFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
	Sort     NoteSort
	Page     int
	Size     int
}

// NoteStore defines the interface for review-note persistence.
type NoteStore interface {
	// RecordWrong applies one wrong event to the (user, word) pair:
	// creates the ledger row on the first event, increments the wrong
	// count and refreshes the last-wrong timestamp on every event. The
	// first-event insert race resolves internally; the net effect is
	// always exactly +1 and at most one row per pair.
	//
	// Grading calls this through WithTx so the increment commits or rolls
	// back together with the attempt row.
	RecordWrong(ctx context.Context, userID, wordID uuid.UUID) error

	// GetByID retrieves a note by its unique ID regardless of owner.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewNote, error)

	// List returns one page of the user's notes joined with word fields,
	// plus the total count of the filtered set.
	List(ctx context.Context, userID uuid.UUID, filter NoteFilter) ([]domain.NoteDetail, int64, error)

	// ListStarred returns all starred notes of the user, newest first.
	ListStarred(ctx context.Context, userID uuid.UUID) ([]domain.NoteDetail, error)

	// Update writes the note text and, when starred is non-nil, the
	// starred flag, scoped by both note ID and owner. Returns the number
	// of rows affected; zero means not-found or not-owned.
	Update(ctx context.Context, id, userID uuid.UUID, note string, starred *bool) (int64, error)

	// SetStarred writes the starred flag in one conditional update scoped
	// by note ID and owner. Returns the number of rows affected.
	SetStarred(ctx context.Context, id, userID uuid.UUID, starred bool) (int64, error)

	// ToggleStarred flips the starred flag in one conditional update
	// scoped by note ID and owner. Returns the number of rows affected.
	ToggleStarred(ctx context.Context, id, userID uuid.UUID) (int64, error)

	// Delete removes the note scoped by note ID and owner. Returns the
	// number of rows affected.
	Delete(ctx context.Context, id, userID uuid.UUID) (int64, error)

	// GetOwners maps each existing note ID of the given set to its owner.
	// IDs with no row are absent from the result.
	GetOwners(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)

	// DeleteMany removes the given notes scoped by owner and returns the
	// number of rows deleted. Rows not owned by userID stay untouched.
	DeleteMany(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)

	// WithTx returns a new NoteStore bound to the provided transaction.
	WithTx(tx *sql.Tx) NoteStore
}
