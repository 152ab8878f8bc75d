package neo4j

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// CollectionRepository persists collection vertices and their membership edges
type CollectionRepository struct {
	store  *Store
	logger *zap.Logger
}

var _ ports.CollectionRepository = (*CollectionRepository)(nil)

// NewCollectionRepository creates a collection repository over the graph store
func NewCollectionRepository(store *Store, logger *zap.Logger) *CollectionRepository {
	return &CollectionRepository{store: store, logger: logger}
}

// GetOrCreate resolves the account's collection by name, creating the vertex
// and its owns edge when absent
func (r *CollectionRepository) GetOrCreate(ctx context.Context, accountID string, name string) (*entities.Collection, error) {
	existing, err := r.store.Traverse(ctx,
		NewTraversalByProp("account", "uuid", accountID).
			Follow("owns", DirectionOut, "collection").
			Where("name", name).
			Page(1, 0))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return collectionFromVertex(existing[0])
	}

	accountVertex, err := r.store.TraverseOne(ctx, NewTraversalByProp("account", "uuid", accountID))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("account")
		}
		return nil, err
	}

	id := valueobjects.NewVertexID()
	if _, err := r.store.CreateVertex(ctx, "collection", map[string]any{
		"id":   id.String(),
		"name": name,
	}); err != nil {
		return nil, err
	}
	if err := r.store.CreateEdge(ctx, "owns", "account", accountVertex.ID, "collection", id.String()); err != nil {
		return nil, err
	}

	r.logger.Debug("Collection created",
		zap.String("name", name),
		zap.String("accountID", accountID),
	)
	return entities.ReconstructCollection(id, name), nil
}

// AttachMedia creates the has_media edge if absent
func (r *CollectionRepository) AttachMedia(ctx context.Context, collectionID, mediaID valueobjects.VertexID) error {
	return r.store.CreateEdgeIfAbsent(ctx, "has_media", "collection", collectionID.String(), "media", mediaID.String())
}

// CollectionOf retrieves the collection owning a media item
func (r *CollectionRepository) CollectionOf(ctx context.Context, mediaID valueobjects.VertexID) (*entities.Collection, error) {
	vertex, err := r.store.TraverseOne(ctx,
		NewTraversal("media", mediaID.String()).Follow("has_media", DirectionIn, "collection"))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("collection")
		}
		return nil, err
	}
	return collectionFromVertex(*vertex)
}

// MediaIn retrieves the media in the account's named collection, oldest first
func (r *CollectionRepository) MediaIn(ctx context.Context, accountID string, name string) ([]*entities.Media, error) {
	vertices, err := r.store.Traverse(ctx,
		NewTraversalByProp("account", "uuid", accountID).
			Follow("owns", DirectionOut, "collection").
			Where("name", name).
			Page(1, 0))
	if err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, pkgerrors.NewNotFoundError("collection")
	}

	rows, err := r.store.Traverse(ctx,
		NewTraversal("collection", vertices[0].ID).
			Follow("has_media", DirectionOut, "media").
			Order("created_at", false))
	if err != nil {
		return nil, err
	}

	media := make([]*entities.Media, 0, len(rows))
	for _, row := range rows {
		m, err := mediaFromVertex(row, accountID, name, nil)
		if err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, nil
}

// NewestIn retrieves the most recently added media in the named collection
func (r *CollectionRepository) NewestIn(ctx context.Context, accountID string, name string) (*entities.Media, error) {
	collections, err := r.store.Traverse(ctx,
		NewTraversalByProp("account", "uuid", accountID).
			Follow("owns", DirectionOut, "collection").
			Where("name", name).
			Page(1, 0))
	if err != nil {
		return nil, err
	}
	if len(collections) == 0 {
		return nil, pkgerrors.NewNotFoundError("collection")
	}

	vertex, err := r.store.TraverseOne(ctx,
		NewTraversal("collection", collections[0].ID).
			Follow("has_media", DirectionOut, "media").
			Order("created_at", true))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewNotFoundError("media")
		}
		return nil, err
	}
	return mediaFromVertex(*vertex, accountID, name, nil)
}
