package quizgen

import (
	"context"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/store"
)

// WordRepository defines the slice of word storage this service needs.
type WordRepository interface {
	// SampleRandom returns up to n random words from the whole corpus.
	SampleRandom(ctx context.Context, n int) ([]*domain.Word, error)

	// SampleRandomByCategory returns up to n random words whose
	// category matches, ignoring whitespace differences.
	SampleRandomByCategory(ctx context.Context, category string, n int) ([]*domain.Word, error)

	// SampleDistractors returns up to limit distinct answer texts from
	// the same category, excluding the word being asked about.
	SampleDistractors(
		ctx context.Context,
		direction domain.Direction,
		category string,
		excludeID uuid.UUID,
		limit int,
	) ([]string, error)
}

// NoteRepository provides the review notes a notes-based quiz draws
// its questions from.
type NoteRepository interface {
	// List returns a page of the user's review notes joined with their
	// word details, plus the total match count.
	List(ctx context.Context, userID uuid.UUID, filter store.NoteFilter) ([]domain.NoteDetail, int64, error)
}

// AuditRepository records generated questions when auditing is enabled.
type AuditRepository interface {
	CreateQuestions(
		ctx context.Context,
		userID uuid.UUID,
		direction domain.Direction,
		questions []domain.QuizQuestion,
	) error
}
