package neo4j

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// DimensionRepository manages the tag, person, place and time vertices
type DimensionRepository struct {
	store  *Store
	logger *zap.Logger
}

var _ ports.DimensionRepository = (*DimensionRepository)(nil)

// NewDimensionRepository creates a dimension repository over the graph store
func NewDimensionRepository(store *Store, logger *zap.Logger) *DimensionRepository {
	return &DimensionRepository{store: store, logger: logger}
}

// valueProp names the property holding the dimension's value. Time vertices
// historically use "value"; the others use "name".
func valueProp(kind valueobjects.DimensionKind) string {
	if kind == valueobjects.DimensionTime {
		return "value"
	}
	return "name"
}

// GetOrCreate resolves the dimension vertex by value within the account's
// reachable subgraph, creating a fresh vertex when none matches. Scoping by
// traversal keeps one account's vocabulary from leaking into another's.
func (r *DimensionRepository) GetOrCreate(ctx context.Context, accountID string, kind valueobjects.DimensionKind, value string) (valueobjects.VertexID, error) {
	existing, err := r.store.Traverse(ctx,
		NewTraversalByProp("account", "uuid", accountID).
			Follow("owns", DirectionOut, "collection").
			Follow("has_media", DirectionOut, "media").
			Follow(kind.EdgeLabel(), DirectionOut, kind.VertexClass()).
			Where(valueProp(kind), value).
			Page(1, 0))
	if err != nil {
		return valueobjects.VertexID{}, err
	}
	if len(existing) > 0 {
		return valueobjects.NewVertexIDFromString(existing[0].ID)
	}

	id := valueobjects.NewVertexID()
	if _, err := r.store.CreateVertex(ctx, kind.VertexClass(), map[string]any{
		"id":            id.String(),
		valueProp(kind): value,
	}); err != nil {
		return valueobjects.VertexID{}, err
	}

	r.logger.Debug("Dimension vertex created",
		zap.String("kind", string(kind)),
		zap.String("value", value),
	)
	return id, nil
}

// Attach creates the dimension edge from media to vertex if absent
func (r *DimensionRepository) Attach(ctx context.Context, mediaID, dimensionID valueobjects.VertexID, kind valueobjects.DimensionKind) error {
	return r.store.CreateEdgeIfAbsent(ctx, kind.EdgeLabel(), "media", mediaID.String(), kind.VertexClass(), dimensionID.String())
}

// ValuesFor retrieves the dimension vertices of one kind linked to a media item
func (r *DimensionRepository) ValuesFor(ctx context.Context, mediaID valueobjects.VertexID, kind valueobjects.DimensionKind) ([]ports.DimensionValue, error) {
	vertices, err := r.store.Traverse(ctx,
		NewTraversal("media", mediaID.String()).
			Follow(kind.EdgeLabel(), DirectionOut, kind.VertexClass()).
			Order(valueProp(kind), false))
	if err != nil {
		return nil, err
	}

	values := make([]ports.DimensionValue, 0, len(vertices))
	for _, vertex := range vertices {
		id, err := valueobjects.NewVertexIDFromString(vertex.ID)
		if err != nil {
			return nil, pkgerrors.NewInternalError("dimension vertex has no valid id")
		}
		value, _ := vertex.Props[valueProp(kind)].(string)
		values = append(values, ports.DimensionValue{ID: id, Kind: kind, Value: value})
	}
	return values, nil
}

// CountShared counts the dimension vertices of one kind two media items share
func (r *DimensionRepository) CountShared(ctx context.Context, kind valueobjects.DimensionKind, a, b valueobjects.VertexID) (int, error) {
	return r.store.CountSharedNeighbors(ctx, kind.EdgeLabel(), kind.VertexClass(), a.String(), b.String())
}

// CandidatesSharingAny lists the media sharing at least one dimension vertex
// of any kind with the given item
func (r *DimensionRepository) CandidatesSharingAny(ctx context.Context, mediaID valueobjects.VertexID) ([]valueobjects.VertexID, error) {
	edges := make([]string, 0, len(valueobjects.AllDimensionKinds))
	for _, kind := range valueobjects.AllDimensionKinds {
		edges = append(edges, kind.EdgeLabel())
	}

	raw, err := r.store.NeighborsSharingAny(ctx, edges, mediaID.String())
	if err != nil {
		return nil, err
	}

	ids := make([]valueobjects.VertexID, 0, len(raw))
	for _, candidate := range raw {
		id, err := valueobjects.NewVertexIDFromString(candidate)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
