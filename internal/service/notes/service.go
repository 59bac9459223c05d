// Package notes manages the per-user review-note ledger: listing with
// date presets, note text edits, starring, and bulk deletion.
package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// DateFilter selects a preset last-wrong date range for listings.
type DateFilter string

const (
	// DateFilterAll applies no date bound.
	DateFilterAll DateFilter = "all"

	// DateFilterOneMonth covers the past month up to today.
	DateFilterOneMonth DateFilter = "1m"

	// DateFilterThreeMonths covers the past three months up to today.
	DateFilterThreeMonths DateFilter = "3m"

	// DateFilterLastMonth covers the previous calendar month.
	DateFilterLastMonth DateFilter = "last_month"

	// DateFilterCustom uses the request's explicit From/To dates.
	DateFilterCustom DateFilter = "custom"
)

// ListQuery carries the filters and paging of a note listing.
type ListQuery struct {
	Category string
	Date     DateFilter

	// From and To are YYYY-MM-DD bounds used with DateFilterCustom.
	// Unparseable values are ignored.
	From string
	To   string

	// Sort is "latest" (default) or "last_wrong".
	Sort string

	Page int
	Size int
}

// Listing is one page of notes plus paging metadata.
type Listing struct {
	Items []domain.NoteDetail
	Total int64
	Page  int
	Size  int
}

// BulkDeleteResult partitions a bulk delete request by outcome.
type BulkDeleteResult struct {
	Deleted  []uuid.UUID
	NotFound []uuid.UUID
	NotOwned []uuid.UUID

	// Message summarizes the partition for display.
	Message string
}

// NoteService manages a user's review notes.
type NoteService interface {
	// RecordWrong applies one wrong event to the (user, word) pair
	// outside of quiz grading, such as a manual "I got this wrong"
	// action.
	RecordWrong(ctx context.Context, userID, wordID uuid.UUID) error

	// List returns one page of the user's notes.
	List(ctx context.Context, userID uuid.UUID, query ListQuery) (*Listing, error)

	// ListStarred returns all starred notes of the user, newest first.
	ListStarred(ctx context.Context, userID uuid.UUID) ([]domain.NoteDetail, error)

	// Update rewrites the note text and, when starred is non-nil, the
	// starred flag. Returns the updated note.
	//
	// Returns ErrNoteNotFound when no note has this ID and ErrNotOwner
	// when the note belongs to another user.
	Update(ctx context.Context, noteID, userID uuid.UUID, note string, starred *bool) (*domain.ReviewNote, error)

	// SetStarred writes the starred flag and returns the updated note.
	SetStarred(ctx context.Context, noteID, userID uuid.UUID, starred bool) (*domain.ReviewNote, error)

	// ToggleStarred flips the starred flag and returns the updated note.
	ToggleStarred(ctx context.Context, noteID, userID uuid.UUID) (*domain.ReviewNote, error)

	// Delete removes one note owned by the user.
	Delete(ctx context.Context, noteID, userID uuid.UUID) error

	// DeleteMany removes the given notes where owned by the user and
	// reports each requested ID as deleted, not found, or not owned.
	// IDs that exist but belong to someone else are left untouched.
	DeleteMany(ctx context.Context, noteIDs []uuid.UUID, userID uuid.UUID) (*BulkDeleteResult, error)
}

// Common error types for NoteService
var (
	// ErrNoteNotFound indicates that the review note does not exist.
	ErrNoteNotFound = errors.New("review note not found")

	// ErrNotOwner indicates that the note belongs to another user.
	ErrNotOwner = errors.New("unauthorized access: note not owned by user")
)

// ServiceError wraps errors from the note service with additional
// context so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "list", "update")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
