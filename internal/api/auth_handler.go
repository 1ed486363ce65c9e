package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/domain"
	"github.com/tasknest/tasknest-api/internal/redact"
	"github.com/tasknest/tasknest-api/internal/service/auth"
	"github.com/tasknest/tasknest-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordVerifier: passwordVerifier,
		logger:           logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles the /auth/register endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user data")
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		h.logger.Error("failed to create user", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tokens, err := h.issueTokenPair(r, user.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tokens)
}

// Login handles the /auth/login endpoint.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("failed to get user by email", "error", redact.Error(err))
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokens, err := h.issueTokenPair(r, user.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

// RefreshToken handles the /auth/refresh endpoint, exchanging a valid
// refresh token for a fresh token pair.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	tokens, err := h.issueTokenPair(r, claims.UserID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tokens)
}

// issueTokenPair generates an access and refresh token for the user.
func (h *AuthHandler) issueTokenPair(r *http.Request, userID uuid.UUID) (TokenResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate access token",
			"error", redact.Error(err), "user_id", userID.String())
		return TokenResponse{}, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to generate refresh token",
			"error", redact.Error(err), "user_id", userID.String())
		return TokenResponse{}, err
	}

	return TokenResponse{
		UserID:       userID.String(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
