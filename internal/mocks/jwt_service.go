package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/service/auth"
)

// StubJWTService is a configurable auth.JWTService double. Zero values
// produce fixed token strings and successful validations for UserID.
type StubJWTService struct {
	UserID uuid.UUID

	GenerateTokenFn        func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn        func(ctx context.Context, tokenString string) (*auth.Claims, error)
	GenerateRefreshFn      func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateRefreshTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

// GenerateToken implements auth.JWTService.
func (s *StubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.GenerateTokenFn != nil {
		return s.GenerateTokenFn(ctx, userID)
	}
	return "stub-access-token", nil
}

// ValidateToken implements auth.JWTService.
func (s *StubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.ValidateTokenFn != nil {
		return s.ValidateTokenFn(ctx, tokenString)
	}
	return &auth.Claims{UserID: s.UserID, TokenType: "access"}, nil
}

// GenerateRefreshToken implements auth.JWTService.
func (s *StubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if s.GenerateRefreshFn != nil {
		return s.GenerateRefreshFn(ctx, userID)
	}
	return "stub-refresh-token", nil
}

// ValidateRefreshToken implements auth.JWTService.
func (s *StubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.ValidateRefreshTokenFn != nil {
		return s.ValidateRefreshTokenFn(ctx, tokenString)
	}
	return &auth.Claims{UserID: s.UserID, TokenType: "refresh"}, nil
}
