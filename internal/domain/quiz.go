package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Direction selects which side of a word the quiz prompts with.
type Direction string

const (
	// DirectionForward asks for the meaning of a term.
	DirectionForward Direction = "forward"

	// DirectionReverse asks for the term matching a meaning.
	DirectionReverse Direction = "reverse"
)

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// ParseDirection normalizes a request-supplied direction string.
// An empty string defaults to forward; anything else unknown fails.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case "":
		return DirectionForward, nil
	case DirectionForward, DirectionReverse:
		return Direction(s), nil
	default:
		return "", ErrInvalidDirection
	}
}

// Quiz-specific validation errors
var (
	// ErrQuestionOptionCount is returned when a question does not carry
	// exactly OptionCount options.
	ErrQuestionOptionCount = errors.New("question must have exactly 4 options")

	// ErrQuestionOptionsNotUnique is returned when two options carry the same text.
	ErrQuestionOptionsNotUnique = errors.New("question options must be unique")

	// ErrQuestionCorrectIndex is returned when the correct index is out of range.
	ErrQuestionCorrectIndex = errors.New("question correct index out of range")

	// ErrPaperSessionIDEmpty is returned when a paper has no session ID.
	ErrPaperSessionIDEmpty = errors.New("paper session ID cannot be empty")

	// ErrPaperNoQuestions is returned when a paper carries no questions.
	ErrPaperNoQuestions = errors.New("paper must have at least one question")
)

// QuizQuestion is one server-side question including its answer key.
// It is immutable after generation and must never reach a client.
type QuizQuestion struct {
	WordID       uuid.UUID
	Prompt       string
	Options      [OptionCount]string
	CorrectIndex int
	Example      string
}

// Validate checks the question invariants: exactly four distinct
// non-blank options with the correct index in range.
func (q *QuizQuestion) Validate() error {
	seen := make(map[string]struct{}, OptionCount)
	for _, opt := range q.Options {
		if opt == "" {
			return ErrQuestionOptionCount
		}
		if _, dup := seen[opt]; dup {
			return ErrQuestionOptionsNotUnique
		}
		seen[opt] = struct{}{}
	}

	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return ErrQuestionCorrectIndex
	}

	return nil
}

// CorrectText returns the option text at the correct index.
func (q *QuizQuestion) CorrectText() string {
	return q.Options[q.CorrectIndex]
}

// QuizPaper is the full answer-bearing representation of one generated
// quiz. It lives only in the session cache and is never persisted.
type QuizPaper struct {
	SessionID string
	Category  string
	Direction Direction
	Questions []QuizQuestion
}

// Validate checks the paper and every question on it.
func (p *QuizPaper) Validate() error {
	if p.SessionID == "" {
		return ErrPaperSessionIDEmpty
	}

	if len(p.Questions) == 0 {
		return ErrPaperNoQuestions
	}

	for i := range p.Questions {
		if err := p.Questions[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// QuizViewItem is the redacted client representation of one question.
type QuizViewItem struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuizView is the redacted client representation of a paper: same
// session, category and direction, with every answer key stripped.
type QuizView struct {
	SessionID string         `json:"session_id"`
	Category  string         `json:"category"`
	Direction Direction      `json:"direction"`
	Questions []QuizViewItem `json:"questions"`
}

// View builds the redacted QuizView for this paper.
func (p *QuizPaper) View() QuizView {
	items := make([]QuizViewItem, 0, len(p.Questions))
	for i := range p.Questions {
		opts := make([]string, OptionCount)
		copy(opts, p.Questions[i].Options[:])
		items = append(items, QuizViewItem{
			Prompt:  p.Questions[i].Prompt,
			Options: opts,
		})
	}

	return QuizView{
		SessionID: p.SessionID,
		Category:  p.Category,
		Direction: p.Direction,
		Questions: items,
	}
}
