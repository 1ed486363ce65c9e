package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tasknest/tasknest-api/internal/config"
	"github.com/tasknest/tasknest-api/internal/platform/logger"
)

// Token type values carried in the "type" claim.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey           []byte
	tokenLifetime        time.Duration
	refreshTokenLifetime time.Duration
	timeFunc             func() time.Time // Injectable for testing
	clockSkew            time.Duration    // Leeway for clock drift during validation
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA256 signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey:           []byte(cfg.JWTSecret),
		tokenLifetime:        time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshTokenLifetime: time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		timeFunc:             time.Now,
		clockSkew:            2 * time.Minute,
	}, nil
}

// GenerateToken implements JWTService.GenerateToken.
func (s *hmacJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, userID, tokenTypeAccess, s.tokenLifetime)
}

// GenerateRefreshToken implements JWTService.GenerateRefreshToken.
func (s *hmacJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.generate(ctx, userID, tokenTypeRefresh, s.refreshTokenLifetime)
}

// ValidateToken implements JWTService.ValidateToken.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.validate(ctx, tokenString, tokenTypeAccess)
	if err != nil {
		// Map the generic parse failures to access-token errors.
		switch {
		case errors.Is(err, errTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

// ValidateRefreshToken implements JWTService.ValidateRefreshToken.
func (s *hmacJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.validate(ctx, tokenString, tokenTypeRefresh)
	if err != nil {
		switch {
		case errors.Is(err, errTokenExpired):
			return nil, ErrExpiredRefreshToken
		case errors.Is(err, ErrWrongTokenType):
			return nil, ErrWrongTokenType
		default:
			return nil, ErrInvalidRefreshToken
		}
	}
	return claims, nil
}

// errTokenExpired is an internal marker distinguishing expiry from other
// parse failures before the per-token-type error mapping.
var errTokenExpired = errors.New("token expired")

// generate builds and signs a token of the given type and lifetime.
func (s *hmacJWTService) generate(
	ctx context.Context,
	userID uuid.UUID,
	tokenType string,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT token",
			"error", err,
			"user_id", userID,
			"token_type", tokenType)
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signedToken, nil
}

// validate parses the token, checks the signature and time claims, and
// verifies the token carries the expected type.
func (s *hmacJWTService) validate(
	ctx context.Context,
	tokenString string,
	expectedType string,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)
	if err != nil {
		log.Debug("token validation failed",
			"error", err,
			"token_type", expectedType)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, fmt.Errorf("invalid claims")
	}

	if claims.TokenType != expectedType {
		log.Debug("token validation failed: wrong token type",
			"expected", expectedType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return &Claims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}
