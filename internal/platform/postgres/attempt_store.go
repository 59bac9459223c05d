package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/store"
)

// AttemptStore implements the store.AttemptStore interface using a
// PostgreSQL database as the storage backend.
type AttemptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAttemptStore creates a new PostgreSQL implementation of the
// AttemptStore interface. It accepts a database connection or
// transaction managed by the caller. If logger is nil, a default
// logger will be used.
func NewAttemptStore(db store.DBTX, logger *slog.Logger) *AttemptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AttemptStore{
		db:     db,
		logger: logger.With(slog.String("component", "attempt_store")),
	}
}

// Ensure AttemptStore implements store.AttemptStore interface
var _ store.AttemptStore = (*AttemptStore)(nil)

// WithTx implements store.AttemptStore.WithTx.
func (s *AttemptStore) WithTx(tx *sql.Tx) store.AttemptStore {
	return &AttemptStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AttemptStore.Create.
func (s *AttemptStore) Create(ctx context.Context, attempt *domain.AttemptResult) error {
	if err := attempt.Validate(); err != nil {
		return store.NewStoreError("attempt", "create", "invalid attempt", err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempt_results (id, user_id, word_id, chosen_index, is_correct, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		attempt.ID, attempt.UserID, attempt.WordID, attempt.ChosenIndex, attempt.IsCorrect, attempt.CreatedAt)
	if err != nil {
		return store.NewStoreError("attempt", "create", "failed to insert attempt", err)
	}

	return nil
}

// Stats implements store.AttemptStore.Stats.
func (s *AttemptStore) Stats(ctx context.Context, userID uuid.UUID) (domain.AttemptStats, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) AS total,
		        COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		   FROM attempt_results
		  WHERE user_id = $1`,
		userID)

	var stats domain.AttemptStats
	if err := row.Scan(&stats.Total, &stats.Correct); err != nil {
		return domain.AttemptStats{}, store.NewStoreError("attempt", "stats", "failed to query stats", err)
	}

	stats.Wrong = stats.Total - stats.Correct
	return stats, nil
}
