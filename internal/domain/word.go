package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordTermEmpty is returned when a word's source-language form is blank.
	ErrWordTermEmpty = errors.New("word term cannot be empty")

	// ErrWordMeaningEmpty is returned when a word's target-language value is blank.
	ErrWordMeaningEmpty = errors.New("word meaning cannot be empty")
)

// Word is one entry of the vocabulary corpus. Term holds the
// source-language form, Meaning the target-language value; Reading,
// Example and Category are optional.
type Word struct {
	ID        uuid.UUID `json:"id"`
	Term      string    `json:"term"`
	Reading   string    `json:"reading,omitempty"`
	Meaning   string    `json:"meaning"`
	Example   string    `json:"example,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWord creates a new Word and validates it.
func NewWord(term, reading, meaning, example, category string) (*Word, error) {
	word := &Word{
		ID:        uuid.New(),
		Term:      strings.TrimSpace(term),
		Reading:   strings.TrimSpace(reading),
		Meaning:   strings.TrimSpace(meaning),
		Example:   strings.TrimSpace(example),
		Category:  strings.TrimSpace(category),
		CreatedAt: time.Now().UTC(),
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if strings.TrimSpace(w.Term) == "" {
		return ErrWordTermEmpty
	}

	if strings.TrimSpace(w.Meaning) == "" {
		return ErrWordMeaningEmpty
	}

	return nil
}

// AnswerText returns the text a correct option must carry for the
// given direction: the meaning when prompting with the term, the term
// when prompting with the meaning.
func (w *Word) AnswerText(direction Direction) string {
	if direction == DirectionReverse {
		return w.Term
	}
	return w.Meaning
}

// PromptText returns the text the question asks about for the given direction.
func (w *Word) PromptText(direction Direction) string {
	if direction == DirectionReverse {
		return w.Meaning
	}
	return w.Term
}
