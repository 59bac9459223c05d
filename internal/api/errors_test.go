package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/service/auth"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/notes"
	"github.com/danbi/vocadrill/internal/service/quizgen"
	"github.com/danbi/vocadrill/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid_token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired_token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"note_not_owned", notes.ErrNotOwner, http.StatusForbidden},
		{"session_expired", grading.ErrSessionExpired, http.StatusGone},
		{"note_not_found", notes.ErrNoteNotFound, http.StatusNotFound},
		{"word_not_found", store.ErrWordNotFound, http.StatusNotFound},
		{"insufficient_words", quizgen.ErrInsufficientWords, http.StatusBadRequest},
		{"insufficient_distractors", quizgen.ErrInsufficientDistractors, http.StatusBadRequest},
		{"no_matching_notes", quizgen.ErrNoMatchingNotes, http.StatusBadRequest},
		{"invalid_direction", domain.ErrInvalidDirection, http.StatusBadRequest},
		{"unknown_error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestMapErrorToStatusCodeWrapped(t *testing.T) {
	wrapped := fmt.Errorf("word %q has 2 distractors: %w",
		"apple", quizgen.ErrInsufficientDistractors)
	assert.Equal(t, http.StatusBadRequest, MapErrorToStatusCode(wrapped))

	svcErr := &grading.ServiceError{Operation: "grade", Message: "boom", Err: grading.ErrSessionExpired}
	assert.Equal(t, http.StatusGone, MapErrorToStatusCode(svcErr))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Run("known_errors_get_friendly_messages", func(t *testing.T) {
		assert.Equal(t, "Quiz session expired, generate a new quiz",
			GetSafeErrorMessage(grading.ErrSessionExpired))
		assert.Equal(t, "You do not own this note",
			GetSafeErrorMessage(notes.ErrNotOwner))
	})

	t.Run("unknown_errors_leak_nothing", func(t *testing.T) {
		msg := GetSafeErrorMessage(errors.New("pq: connection to host 10.0.0.5 failed"))
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("nil_error", func(t *testing.T) {
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}
