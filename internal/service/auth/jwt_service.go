package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates an access token string and extracts the claims.
	// Returns ErrExpiredToken, ErrInvalidToken, or ErrWrongTokenType on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed JWT refresh token for the user.
	// Refresh tokens live longer and are exchanged for new token pairs.
	GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateRefreshToken validates a refresh token string and extracts the claims.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims carried by the JWT tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
