package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"keepsake-backend/application/services"
	"keepsake-backend/pkg/auth"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/utils"
)

// SuggestionHandler handles sampling and random-pick requests
type SuggestionHandler struct {
	sampler *services.SamplerService
	errors  *pkgerrors.ErrorHandler
	logger  *zap.Logger
}

// NewSuggestionHandler creates a new suggestion handler
func NewSuggestionHandler(sampler *services.SamplerService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		sampler: sampler,
		errors:  errors,
		logger:  logger,
	}
}

// SampleRequest represents the request body for a presentation draw. With
// draw_if_new set, the pivot is the newest present-era item and
// target_media_id is ignored.
type SampleRequest struct {
	TargetMediaID string `json:"target_media_id,omitempty" validate:"omitempty,uuid"`
	DrawIfNew     bool   `json:"draw_if_new,omitempty"`
}

// Sample handles POST /sample
func (h *SuggestionHandler) Sample(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.sampler.SampleForPresentation(r.Context(), userCtx.UserID, req.TargetMediaID, req.DrawIfNew)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, view)
}

// Random handles GET /collections/{name}/random
func (h *SuggestionHandler) Random(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Collection name is required")
		return
	}

	view, err := h.sampler.RandomFromCollection(r.Context(), userCtx.UserID, name)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, view)
}
