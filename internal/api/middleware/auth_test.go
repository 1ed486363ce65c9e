package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest-api/internal/mocks"
	"github.com/tasknest/tasknest-api/internal/service/auth"
)

func TestAuthenticateValidToken(t *testing.T) {
	userID := uuid.New()
	mw := NewAuthMiddleware(&mocks.StubJWTService{UserID: userID})

	var gotUserID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer some-valid-token")
	rr := httptest.NewRecorder()
	mw.Authenticate(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, gotOK)
	assert.Equal(t, userID, gotUserID)
}

func TestAuthenticateRejections(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		validateFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
	}{
		{"missing header", "", nil},
		{"not bearer", "Basic dXNlcjpwYXNz", nil},
		{"malformed bearer", "Bearer", nil},
		{
			"expired token", "Bearer expired",
			func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
		},
		{
			"invalid token", "Bearer garbage",
			func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
		},
		{
			"refresh token used as access token", "Bearer refresh-token",
			func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrWrongTokenType
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMiddleware(&mocks.StubJWTService{ValidateTokenFn: tt.validateFn})

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler should not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			mw.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestGetUserIDWithoutAuthentication(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	_, ok := GetUserID(req)
	assert.False(t, ok)
}
