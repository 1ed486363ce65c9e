package api

import (
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest-api/internal/api/middleware"
	"github.com/tasknest/tasknest-api/internal/api/shared"
	"github.com/tasknest/tasknest-api/internal/service"
)

// AccountHandler handles account-level API requests.
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger.With(slog.String("component", "account_handler")),
	}
}

// DeleteAccount handles DELETE /account, removing the authenticated
// user and all of their tasks in one transaction. The access token that
// authorized the call keeps verifying until it expires, but every
// request made with it fails once the user row is gone.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), userID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
