package neo4j

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// MediaRepository persists media vertices and their related_to edges
type MediaRepository struct {
	store  *Store
	logger *zap.Logger
}

var _ ports.MediaRepository = (*MediaRepository)(nil)

// NewMediaRepository creates a media repository over the graph store
func NewMediaRepository(store *Store, logger *zap.Logger) *MediaRepository {
	return &MediaRepository{store: store, logger: logger}
}

// Save creates the media vertex. Edges to dimensions, collection and related
// media are written separately by the ingestion pipeline.
func (r *MediaRepository) Save(ctx context.Context, accountID string, media *entities.Media) error {
	emotions := make([]string, 0, len(media.Emotions()))
	for _, e := range media.Emotions() {
		emotions = append(emotions, e.String())
	}

	_, err := r.store.CreateVertex(ctx, "media", map[string]any{
		"id":         media.ID().String(),
		"path":       media.Path(),
		"mimetype":   media.Mimetype(),
		"emotions":   emotions,
		"created_at": media.CreatedAt().UnixMilli(),
	})
	return err
}

// GetByID retrieves a media item hydrated with its collection, account and
// explicit relations
func (r *MediaRepository) GetByID(ctx context.Context, id valueobjects.VertexID) (*entities.Media, error) {
	vertex, err := r.store.TraverseOne(ctx, NewTraversal("media", id.String()))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("media")
		}
		return nil, err
	}

	collection := ""
	accountID := ""
	collVertex, err := r.store.TraverseOne(ctx, NewTraversal("media", id.String()).Follow("has_media", DirectionIn, "collection"))
	if err == nil {
		collection, _ = collVertex.Props["name"].(string)
		accountVertex, err := r.store.TraverseOne(ctx,
			NewTraversal("collection", collVertex.ID).Follow("owns", DirectionIn, "account"))
		if err == nil {
			accountID, _ = accountVertex.Props["uuid"].(string)
		}
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	links, err := r.linkedIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return mediaFromVertex(*vertex, accountID, collection, links)
}

// GetByAccount retrieves every media item reachable from the account,
// collection by collection
func (r *MediaRepository) GetByAccount(ctx context.Context, accountID string) ([]*entities.Media, error) {
	collections, err := r.store.Traverse(ctx,
		NewTraversalByProp("account", "uuid", accountID).Follow("owns", DirectionOut, "collection"))
	if err != nil {
		return nil, err
	}

	var media []*entities.Media
	for _, coll := range collections {
		name, _ := coll.Props["name"].(string)
		vertices, err := r.store.Traverse(ctx,
			NewTraversal("collection", coll.ID).
				Follow("has_media", DirectionOut, "media").
				Order("created_at", false))
		if err != nil {
			return nil, err
		}
		for _, vertex := range vertices {
			m, err := mediaFromVertex(vertex, accountID, name, nil)
			if err != nil {
				return nil, err
			}
			media = append(media, m)
		}
	}
	return media, nil
}

// OwnedBy reports whether the media item is reachable from the account
func (r *MediaRepository) OwnedBy(ctx context.Context, accountID string, id valueobjects.VertexID) (bool, error) {
	vertices, err := r.store.Traverse(ctx,
		NewTraversalByProp("account", "uuid", accountID).
			Follow("owns", DirectionOut, "collection").
			Follow("has_media", DirectionOut, "media").
			Where("id", id.String()).
			Page(1, 0))
	if err != nil {
		return false, err
	}
	return len(vertices) > 0, nil
}

// AppendEmotion appends an annotation to the media's emotion list
func (r *MediaRepository) AppendEmotion(ctx context.Context, id valueobjects.VertexID, emotion valueobjects.EmotionTriple) error {
	return r.store.AppendToListProp(ctx, "media", id.String(), "emotions", emotion.String())
}

// Link creates the related_to edge in both directions, skipping directions
// that already exist
func (r *MediaRepository) Link(ctx context.Context, source, target valueobjects.VertexID) error {
	if err := r.store.CreateEdgeIfAbsent(ctx, "related_to", "media", source.String(), "media", target.String()); err != nil {
		return err
	}
	return r.store.CreateEdgeIfAbsent(ctx, "related_to", "media", target.String(), "media", source.String())
}

// GetLinked retrieves the media explicitly related to the given item
func (r *MediaRepository) GetLinked(ctx context.Context, id valueobjects.VertexID) ([]*entities.Media, error) {
	ids, err := r.linkedIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	linked := make([]*entities.Media, 0, len(ids))
	for _, linkedID := range ids {
		m, err := r.GetByID(ctx, linkedID)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		linked = append(linked, m)
	}
	return linked, nil
}

// Delete removes the media vertex and cascades its edges
func (r *MediaRepository) Delete(ctx context.Context, id valueobjects.VertexID) error {
	if err := r.store.DeleteVertexCascade(ctx, "media", id.String()); err != nil {
		return err
	}
	r.logger.Debug("Media vertex deleted", zap.String("mediaID", id.String()))
	return nil
}

// linkedIDs lists the ids one related_to hop away
func (r *MediaRepository) linkedIDs(ctx context.Context, id valueobjects.VertexID) ([]valueobjects.VertexID, error) {
	vertices, err := r.store.Traverse(ctx,
		NewTraversal("media", id.String()).Follow("related_to", DirectionOut, "media"))
	if err != nil {
		return nil, err
	}

	ids := make([]valueobjects.VertexID, 0, len(vertices))
	for _, vertex := range vertices {
		linkedID, err := valueobjects.NewVertexIDFromString(vertex.ID)
		if err != nil {
			continue
		}
		ids = append(ids, linkedID)
	}
	return ids, nil
}
