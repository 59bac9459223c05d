// Package grading scores submitted quiz answers against cached papers
// and persists the attempt rows plus wrong-answer reinforcement in one
// transaction.
package grading

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	// Index is the question's position on the paper.
	Index int

	// Prompt and Options echo the question as the client saw it.
	Prompt  string
	Options []string

	// Chosen is the submitted option index, nil when the question was
	// left unanswered.
	Chosen *int

	// CorrectIndex reveals the answer key now that grading happened.
	CorrectIndex int

	IsCorrect   bool
	Explanation string
	Example     string
}

// GradeReport summarizes a graded submission.
type GradeReport struct {
	SessionID string
	Total     int
	Correct   int
	Results   []QuestionResult
}

// GradingService grades quiz submissions against the session cache.
type GradingService interface {
	// Grade scores the answers for the cached paper under sessionID.
	// Every question receives a result row; unanswered questions are
	// graded incorrect. Each attempt row and, for answered wrong
	// questions, the reinforcement increment commit atomically.
	//
	// Returns:
	//   - (*GradeReport, nil): the per-question outcomes
	//   - (nil, ErrSessionExpired): the paper is no longer cached
	//   - (nil, error): any other failure, typically from the database
	Grade(
		ctx context.Context,
		sessionID string,
		userID uuid.UUID,
		answers map[int]int,
	) (*GradeReport, error)

	// Stats returns the user's lifetime attempt counters.
	Stats(ctx context.Context, userID uuid.UUID) (domain.AttemptStats, error)
}

// Common error types for GradingService
var (
	// ErrSessionExpired indicates the quiz session is absent from the
	// cache, either evicted, expired, or never issued.
	ErrSessionExpired = errors.New("quiz session expired or not found")
)

// ServiceError wraps errors from the grading service with additional
// context so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "grade")
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

// NewGradeError returns a new ServiceError for the grade operation.
func NewGradeError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "grade",
		Message:   message,
		Err:       err,
	}
}
