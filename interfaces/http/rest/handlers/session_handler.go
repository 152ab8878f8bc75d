package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/services"
	"keepsake-backend/pkg/auth"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/utils"
)

// SessionHandler handles viewing-session HTTP requests
type SessionHandler struct {
	sessions *services.SessionService
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		errors:   errors,
		logger:   logger,
	}
}

// StartSessionRequest represents the request body for starting a session
type StartSessionRequest struct {
	MediaID string `json:"media_id" validate:"required,uuid"`
}

// StartSession handles POST /sessions
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.sessions.Start(r.Context(), commands.StartSessionCommand{
		AccountID: userCtx.UserID,
		MediaID:   req.MediaID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, view)
}
