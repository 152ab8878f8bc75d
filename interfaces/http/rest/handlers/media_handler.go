package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/queries"
	"keepsake-backend/application/services"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/pkg/auth"
	"keepsake-backend/pkg/common"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/utils"
)

// MediaHandler handles media ingestion, lookup, annotation and relation requests
type MediaHandler struct {
	media     *services.MediaService
	emotions  *services.EmotionService
	relations *services.RelationService
	errors    *pkgerrors.ErrorHandler
	logger    *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(
	media *services.MediaService,
	emotions *services.EmotionService,
	relations *services.RelationService,
	errors *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *MediaHandler {
	return &MediaHandler{
		media:     media,
		emotions:  emotions,
		relations: relations,
		errors:    errors,
		logger:    logger,
	}
}

// IngestRequest represents the request body for ingesting a media item.
// Dimension values can arrive either in their typed lists or as prefixed
// expressions in tag_names ("@" place, "p/" person, "t/" time, bare tag).
type IngestRequest struct {
	Path       string   `json:"path" validate:"required,max=1024"`
	Mimetype   string   `json:"mimetype" validate:"required,max=255"`
	Collection string   `json:"collection" validate:"required,max=200"`
	Tags       []string `json:"tags,omitempty" validate:"omitempty,max=100,dive,min=1,max=200"`
	People     []string `json:"people,omitempty" validate:"omitempty,max=100,dive,min=1,max=200"`
	Places     []string `json:"places,omitempty" validate:"omitempty,max=100,dive,min=1,max=200"`
	Times      []string `json:"times,omitempty" validate:"omitempty,max=100,dive,min=1,max=200"`
	TagNames   []string `json:"tag_names,omitempty" validate:"omitempty,max=100,dive,min=1,max=201"`
	Links      []string `json:"links,omitempty" validate:"omitempty,max=100,dive,uuid"`
}

// AppendEmotionRequest represents the request body for an emotion annotation
type AppendEmotionRequest struct {
	Emotions string `json:"emotions" validate:"required,max=200"`
}

// CreateLinkRequest represents the request body for relating two media items
type CreateLinkRequest struct {
	TargetID string `json:"target_id" validate:"required,uuid"`
}

// Ingest handles POST /media
func (h *MediaHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.IngestMediaCommand{
		AccountID:  userCtx.UserID,
		Path:       req.Path,
		Mimetype:   req.Mimetype,
		Collection: req.Collection,
		Tags:       req.Tags,
		People:     req.People,
		Places:     req.Places,
		Times:      req.Times,
		Links:      req.Links,
	}

	// Prefixed expressions fold into their typed lists
	for _, expr := range req.TagNames {
		kind, value := valueobjects.ParsePrefixed(expr)
		switch kind {
		case valueobjects.DimensionPerson:
			cmd.People = append(cmd.People, value)
		case valueobjects.DimensionPlace:
			cmd.Places = append(cmd.Places, value)
		case valueobjects.DimensionTime:
			cmd.Times = append(cmd.Times, value)
		default:
			cmd.Tags = append(cmd.Tags, value)
		}
	}

	view, err := h.media.Ingest(r.Context(), cmd)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, view)
}

// GetMedia handles GET /media/{mediaID}
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	view, err := h.media.GetMedia(r.Context(), userCtx.UserID, mediaID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, view)
}

// ListMedia handles GET /media. An optional RFC3339 since parameter narrows
// the listing to recently ingested items.
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summaries, err := h.media.ListMedia(r.Context(), userCtx.UserID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := utils.ParseRFC3339(raw)
		if err != nil {
			h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid since parameter, expected RFC3339")
			return
		}
		summaries = summariesSince(summaries, since)
	}

	page := common.Paginate(summaries, common.ExtractPaginationParams(r))
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"media":      page.Items,
		"pagination": page.Pagination,
	})
}

// DestroyMedia handles DELETE /media/{mediaID}
func (h *MediaHandler) DestroyMedia(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	err := h.media.Destroy(r.Context(), commands.DestroyMediaCommand{
		AccountID: userCtx.UserID,
		MediaID:   mediaID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AppendEmotion handles POST /media/{mediaID}/emotions
func (h *MediaHandler) AppendEmotion(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	var req AppendEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	view, err := h.emotions.AppendEmotion(r.Context(), commands.AppendEmotionCommand{
		AccountID: userCtx.UserID,
		MediaID:   mediaID,
		Emotions:  req.Emotions,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, view)
}

// EmotionalLinks handles GET /media/{mediaID}/emotional-links
func (h *MediaHandler) EmotionalLinks(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	view, err := h.emotions.EmotionalLinks(r.Context(), userCtx.UserID, mediaID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, view)
}

// Related handles GET /media/{mediaID}/related. Per-dimension weights may be
// overridden through the tags, people, places and times query parameters.
func (h *MediaHandler) Related(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	weights := h.relations.DefaultWeights()
	if v, ok := weightParam(r, "tags"); ok {
		weights.Tags = v
	}
	if v, ok := weightParam(r, "people"); ok {
		weights.People = v
	}
	if v, ok := weightParam(r, "places"); ok {
		weights.Places = v
	}
	if v, ok := weightParam(r, "times"); ok {
		weights.Times = v
	}

	ranked, err := h.relations.ScoreRelated(r.Context(), userCtx.UserID, mediaID, weights)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"related": ranked})
}

// ListLinks handles GET /media/{mediaID}/links
func (h *MediaHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	linked, err := h.media.GetLinked(r.Context(), userCtx.UserID, mediaID)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"linked": linked})
}

// CreateLink handles POST /media/{mediaID}/links
func (h *MediaHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	userCtx, mediaID, ok := h.mediaRequest(w, r)
	if !ok {
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err := h.media.LinkMedia(r.Context(), commands.LinkMediaCommand{
		AccountID: userCtx.UserID,
		SourceID:  mediaID,
		TargetID:  req.TargetID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"source_id": mediaID,
		"target_id": req.TargetID,
	})
}

// CollectionMedia handles GET /collections/{name}/media
func (h *MediaHandler) CollectionMedia(w http.ResponseWriter, r *http.Request) {
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

	summaries, err := h.media.CollectionMedia(r.Context(), userCtx.UserID, name)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	page := common.Paginate(summaries, common.ExtractPaginationParams(r))
	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"media":      page.Items,
		"pagination": page.Pagination,
	})
}

// mediaRequest extracts the authenticated user and the mediaID path parameter
func (h *MediaHandler) mediaRequest(w http.ResponseWriter, r *http.Request) (*auth.UserContext, string, bool) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.HandleStatus(w, r, http.StatusUnauthorized, "Unauthorized")
		return nil, "", false
	}

	mediaID := chi.URLParam(r, "mediaID")
	if mediaID == "" {
		h.errors.HandleStatus(w, r, http.StatusBadRequest, "Media ID is required")
		return nil, "", false
	}

	return userCtx, mediaID, true
}

// summariesSince keeps the summaries created at or after the cutoff
func summariesSince(items []queries.MediaSummary, cutoff time.Time) []queries.MediaSummary {
	kept := make([]queries.MediaSummary, 0, len(items))
	for _, item := range items {
		if !item.CreatedAt.Before(cutoff) {
			kept = append(kept, item)
		}
	}
	return kept
}

// weightParam parses one float weight query parameter
func weightParam(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
