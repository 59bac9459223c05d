package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danbi/vocadrill/internal/domain"
	"github.com/danbi/vocadrill/internal/service/auth"
	"github.com/danbi/vocadrill/internal/service/grading"
	"github.com/danbi/vocadrill/internal/service/notes"
	"github.com/danbi/vocadrill/internal/service/quizgen"
	"github.com/danbi/vocadrill/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, notes.ErrNotOwner):
		return http.StatusForbidden

	// Expired quiz sessions get their own code so clients can prompt
	// for a fresh quiz instead of a retry.
	case errors.Is(err, grading.ErrSessionExpired):
		return http.StatusGone

	// Not found errors
	case errors.Is(err, notes.ErrNoteNotFound),
		errors.Is(err, store.ErrNoteNotFound),
		errors.Is(err, store.ErrWordNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, quizgen.ErrInsufficientWords),
		errors.Is(err, quizgen.ErrInsufficientDistractors),
		errors.Is(err, quizgen.ErrNoMatchingNotes),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	// Authorization errors
	case errors.Is(err, notes.ErrNotOwner):
		return "You do not own this note"

	case errors.Is(err, grading.ErrSessionExpired):
		return "Quiz session expired, generate a new quiz"

	// Not found errors
	case errors.Is(err, notes.ErrNoteNotFound),
		errors.Is(err, store.ErrNoteNotFound):
		return "Note not found"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"

	// Bad request errors
	case errors.Is(err, quizgen.ErrInsufficientWords):
		return "Not enough words available for the requested quiz"

	case errors.Is(err, quizgen.ErrInsufficientDistractors):
		return "Not enough answer options available for the requested quiz"

	case errors.Is(err, quizgen.ErrNoMatchingNotes):
		return "No review notes match the requested filters"

	case errors.Is(err, domain.ErrInvalidDirection):
		return "Invalid quiz direction"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'GenerateQuizRequest.Count' Error:Field
		// validation for 'Count' failed on the 'min' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return "Validation failed on field '" + field + "' (" + tag + ")"
				}
				return "Validation failed on field '" + field + "'"
			}
		}
		return "Request validation failed"
	}

	return "Invalid request"
}
