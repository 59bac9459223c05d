package grading

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/cache"
	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/platform/logger"
	"github.com/danbi/vocadrill/internal/store"
)

// Verify interface compliance at compile time
var _ GradingService = (*gradingServiceImpl)(nil)

// gradingServiceImpl implements the GradingService interface.
type gradingServiceImpl struct {
	db          *sql.DB
	papers      cache.PaperCache
	attemptRepo AttemptRepository
	noteRepo    NoteRepository
	logger      *slog.Logger

	// runTx is swappable in tests so grading logic can be exercised
	// without a live database.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewGradingService creates a new GradingService implementation.
func NewGradingService(
	db *sql.DB,
	papers cache.PaperCache,
	attemptRepo AttemptRepository,
	noteRepo NoteRepository,
	logger *slog.Logger,
) GradingService {
	if db == nil {
		panic("db cannot be nil")
	}
	if papers == nil {
		panic("papers cannot be nil")
	}
	if attemptRepo == nil {
		panic("attemptRepo cannot be nil")
	}
	if noteRepo == nil {
		panic("noteRepo cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &gradingServiceImpl{
		db:          db,
		papers:      papers,
		attemptRepo: attemptRepo,
		noteRepo:    noteRepo,
		logger:      logger.With(slog.String("component", "grading_service")),
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// Grade implements GradingService.Grade.
func (s *gradingServiceImpl) Grade(
	ctx context.Context,
	sessionID string,
	userID uuid.UUID,
	answers map[int]int,
) (*GradeReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	paper, ok := s.papers.Get(sessionID)
	if !ok {
		log.Warn("grading against missing session",
			slog.String("session_id", sessionID),
			slog.String("user_id", userID.String()))
		return nil, ErrSessionExpired
	}

	report := &GradeReport{
		SessionID: sessionID,
		Total:     len(paper.Questions),
		Results:   make([]QuestionResult, 0, len(paper.Questions)),
	}

	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txAttempts := s.attemptRepo.WithTx(tx)
		txNotes := s.noteRepo.WithTx(tx)

		for i := range paper.Questions {
			q := &paper.Questions[i]

			var chosen *int
			if idx, answered := answers[i]; answered && idx >= 0 && idx < domain.OptionCount {
				chosen = &idx
			}
			isCorrect := chosen != nil && *chosen == q.CorrectIndex

			attempt, err := domain.NewAttemptResult(userID, q.WordID, chosen, isCorrect)
			if err != nil {
				return fmt.Errorf("failed to build attempt: %w", err)
			}
			if err := txAttempts.Create(ctx, attempt); err != nil {
				return fmt.Errorf("failed to save attempt: %w", err)
			}

			// Skipped questions count as wrong but do not reinforce:
			// a blank is not evidence the user confused this word.
			if !isCorrect && chosen != nil {
				if err := txNotes.RecordWrong(ctx, userID, q.WordID); err != nil {
					return fmt.Errorf("failed to record wrong answer: %w", err)
				}
			}

			if isCorrect {
				report.Correct++
			}
			report.Results = append(report.Results, buildResult(i, q, chosen, isCorrect))
		}
		return nil
	})
	if err != nil {
		log.Error("failed to grade submission",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID),
			slog.String("user_id", userID.String()))
		return nil, NewGradeError("failed to persist graded results", err)
	}

	log.Info("submission graded",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID.String()),
		slog.Int("total", report.Total),
		slog.Int("correct", report.Correct))

	return report, nil
}

// Stats implements GradingService.Stats.
func (s *gradingServiceImpl) Stats(ctx context.Context, userID uuid.UUID) (domain.AttemptStats, error) {
	stats, err := s.attemptRepo.Stats(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AttemptStats{}, nil
		}
		return domain.AttemptStats{}, NewGradeError("failed to load attempt stats", err)
	}
	return stats, nil
}

// buildResult renders the per-question outcome, including the
// explanation shown next to wrong or skipped answers.
func buildResult(index int, q *domain.QuizQuestion, chosen *int, isCorrect bool) QuestionResult {
	var explanation string
	switch {
	case isCorrect:
		explanation = "Correct."
	case chosen == nil:
		explanation = fmt.Sprintf("Not answered. The correct answer is %q.", q.CorrectText())
	default:
		explanation = fmt.Sprintf("The correct answer is %q.", q.CorrectText())
	}

	return QuestionResult{
		Index:        index,
		Prompt:       q.Prompt,
		Options:      append([]string(nil), q.Options[:]...),
		Chosen:       chosen,
		CorrectIndex: q.CorrectIndex,
		IsCorrect:    isCorrect,
		Explanation:  explanation,
		Example:      q.Example,
	}
}
