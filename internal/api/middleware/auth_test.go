package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danbi/vocadrill/internal/service/auth"
)

// fakeJWTService validates one known token string.
type fakeJWTService struct {
	validToken string
	userID     uuid.UUID
	err        error
}

func (f *fakeJWTService) GenerateToken(_ context.Context, _ uuid.UUID) (string, error) {
	return f.validToken, nil
}

func (f *fakeJWTService) ValidateToken(_ context.Context, tokenString string) (*auth.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	if tokenString != f.validToken {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: f.userID}, nil
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	jwtService := &fakeJWTService{validToken: "good-token", userID: userID}
	middleware := NewAuthMiddleware(jwtService)

	var seenUserID uuid.UUID
	var seenOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, seenOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid_token",
			header:         "Bearer good-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing_header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong_scheme",
			header:         "Basic good-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "malformed_header",
			header:         "Bearer",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown_token",
			header:         "Bearer bad-token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenOK = false

			req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			middleware.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				require.True(t, seenOK)
				assert.Equal(t, userID, seenUserID)
			} else {
				assert.False(t, seenOK, "handler must not run for rejected requests")
			}
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	middleware := NewAuthMiddleware(&fakeJWTService{err: auth.ErrExpiredToken})

	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	middleware.Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
