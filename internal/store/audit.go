package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// QuizAuditStore persists a durable trace of generated questions. The
// trace exists for reference only: the canonical answer key lives in the
// session cache and audit rows never flow back through any read API.
type QuizAuditStore interface {
	// CreateQuestions saves one audit row per generated question.
	CreateQuestions(
		ctx context.Context,
		userID uuid.UUID,
		direction domain.Direction,
		questions []domain.QuizQuestion,
	) error
}
