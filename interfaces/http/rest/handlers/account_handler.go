package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/services"
	"keepsake-backend/pkg/auth"
	pkgerrors "keepsake-backend/pkg/errors"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accounts *services.AccountService
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts *services.AccountService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		errors:   errors,
		logger:   logger,
	}
}

// CreateAccount handles POST /accounts. The account vertex is registered for
// the authenticated identity; there is nothing else to supply.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	view, err := h.accounts.Create(r.Context(), commands.CreateAccountCommand{UUID: userCtx.UserID})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, view)
}

// GetAccount handles GET /accounts/me
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	view, err := h.accounts.Get(r.Context(), userCtx.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, view)
}
