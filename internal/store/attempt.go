package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// AttemptStore defines the interface for attempt-result persistence.
// Attempt rows are append-only: there are no update or delete methods.
type AttemptStore interface {
	// Create saves one attempt result row.
	// Returns validation errors if the attempt data is invalid.
	//
	// Grading writes attempt rows together with reinforcement updates and
	// MUST run both within one transaction; use WithTx alongside
	// store.RunInTransaction for that.
	Create(ctx context.Context, attempt *domain.AttemptResult) error

	// Stats returns the user's lifetime total/correct/wrong counters.
	Stats(ctx context.Context, userID uuid.UUID) (domain.AttemptStats, error)

	// WithTx returns a new AttemptStore bound to the provided transaction.
	WithTx(tx *sql.Tx) AttemptStore
}
