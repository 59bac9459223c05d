package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// WordStore defines the read-only interface the quiz core uses to reach
// the word corpus. Corpus management happens outside this service.
type WordStore interface {
	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetByIDs retrieves the words for the given IDs. Missing IDs are
	// silently skipped; the result order is unspecified.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Word, error)

	// SampleRandom returns up to n words sampled uniformly from the
	// whole corpus. Fewer than n rows means the corpus is too small;
	// callers decide whether that is an error.
	SampleRandom(ctx context.Context, n int) ([]*domain.Word, error)

	// SampleRandomByCategory returns up to n words sampled uniformly
	// from the given category. Category comparison ignores surrounding
	// whitespace.
	SampleRandomByCategory(ctx context.Context, category string, n int) ([]*domain.Word, error)

	// SampleDistractors returns up to limit distinct non-blank candidate
	// texts from the given category, excluding the word with excludeID.
	// For the forward direction the candidates are meanings; for the
	// reverse direction they are terms.
	SampleDistractors(
		ctx context.Context,
		direction domain.Direction,
		category string,
		excludeID uuid.UUID,
		limit int,
	) ([]string, error)
}
