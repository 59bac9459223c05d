// Package quizgen assembles multiple-choice quiz papers from the word
// corpus and parks their answer keys in the session cache.
package quizgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/danbi/vocadrill/internal/domain"
)

// GenerateRequest carries the parameters for a corpus-backed quiz.
type GenerateRequest struct {
	// Category restricts the question pool. Empty or "all" means the
	// whole corpus.
	Category string

	// Direction selects prompt/option sides. Empty defaults to forward.
	Direction domain.Direction

	// Count is the requested number of questions. Non-positive values
	// fall back to the configured default.
	Count int
}

// NotesGenerateRequest carries the parameters for a quiz built from the
// user's own review notes instead of the shared corpus.
type NotesGenerateRequest struct {
	Category  string
	Direction domain.Direction
	Count     int

	// From and To optionally bound the last-wrong date of eligible
	// notes, formatted as YYYY-MM-DD. Unparseable values are ignored.
	From string
	To   string
}

// QuizGenerationService builds quiz papers and caches their answer keys
// for later grading.
type QuizGenerationService interface {
	// Generate builds a quiz from the word corpus for the given user.
	//
	// Returns:
	//   - (*domain.QuizView, nil): the redacted paper handed to clients
	//   - (nil, ErrInsufficientWords): the pool cannot fill the request
	//   - (nil, ErrInsufficientDistractors): a word lacks enough
	//     distinct wrong options in its category
	//   - (nil, error): any other failure, typically from the database
	Generate(ctx context.Context, userID uuid.UUID, req GenerateRequest) (*domain.QuizView, error)

	// GenerateFromNotes builds a quiz whose questions come from the
	// user's review notes. The question count is capped at the number
	// of matching notes rather than treated as a hard requirement.
	//
	// Returns ErrNoMatchingNotes when no note survives the filters.
	GenerateFromNotes(
		ctx context.Context,
		userID uuid.UUID,
		req NotesGenerateRequest,
	) (*domain.QuizView, error)
}

// Common error types for QuizGenerationService
var (
	// ErrInsufficientWords indicates the word pool is smaller than the
	// requested question count.
	ErrInsufficientWords = errors.New("not enough words to build quiz")

	// ErrInsufficientDistractors indicates a question could not gather
	// the minimum number of distinct wrong options.
	ErrInsufficientDistractors = errors.New("not enough distractors for word")

	// ErrNoMatchingNotes indicates no review note matched the filters
	// of a notes-based quiz request.
	ErrNoMatchingNotes = errors.New("no review notes match the filters")
)

// ServiceError wraps errors from the quiz generation service with
// additional context so consumers can differentiate failures with
// errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "generate")
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

// NewGenerateError returns a new ServiceError for the generate operation.
func NewGenerateError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "generate",
		Message:   message,
		Err:       err,
	}
}
