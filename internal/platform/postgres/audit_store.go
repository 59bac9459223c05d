package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/store"
)

// optionKeys maps an option index to its audit-row letter.
var optionKeys = [domain.OptionCount]string{"A", "B", "C", "D"}

// QuizAuditStore implements the store.QuizAuditStore interface using a
// PostgreSQL database as the storage backend.
type QuizAuditStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewQuizAuditStore creates a new PostgreSQL implementation of the
// QuizAuditStore interface. If logger is nil, a default logger will be
// used.
func NewQuizAuditStore(db store.DBTX, logger *slog.Logger) *QuizAuditStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &QuizAuditStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_audit_store")),
	}
}

// Ensure QuizAuditStore implements store.QuizAuditStore interface
var _ store.QuizAuditStore = (*QuizAuditStore)(nil)

// CreateQuestions implements store.QuizAuditStore.CreateQuestions.
func (s *QuizAuditStore) CreateQuestions(
	ctx context.Context,
	userID uuid.UUID,
	direction domain.Direction,
	questions []domain.QuizQuestion,
) error {
	now := time.Now().UTC()

	for i := range questions {
		q := &questions[i]
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO quiz_audit
			   (id, word_id, generated_by, direction, prompt,
			    option_a, option_b, option_c, option_d, correct_option, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			uuid.New(), q.WordID, userID, string(direction), q.Prompt,
			q.Options[0], q.Options[1], q.Options[2], q.Options[3],
			optionKeys[q.CorrectIndex], now)
		if err != nil {
			return store.NewStoreError("quiz_audit", "create", "failed to insert audit row", err)
		}
	}

	return nil
}
