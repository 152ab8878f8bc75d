package neo4j

import (
	"time"

	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// mediaFromVertex maps a raw media row into the domain entity. The owning
// collection and account come from separate traversals; the raw shape never
// leaves this package.
func mediaFromVertex(v VertexRecord, accountID, collection string, links []valueobjects.VertexID) (*entities.Media, error) {
	id, err := valueobjects.NewVertexIDFromString(v.ID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("media vertex has no valid id")
	}

	path, _ := v.Props["path"].(string)
	mimetype, _ := v.Props["mimetype"].(string)

	var emotions []valueobjects.EmotionTriple
	if raw, ok := v.Props["emotions"].([]any); ok {
		for _, entry := range raw {
			str, ok := entry.(string)
			if !ok {
				continue
			}
			triple, err := valueobjects.NewEmotionTriple(str)
			if err != nil {
				// Annotations are validated at write time; a bad one
				// in the store is skipped rather than fatal
				continue
			}
			emotions = append(emotions, triple)
		}
	}

	return entities.ReconstructMedia(id, accountID, path, mimetype, collection, emotions, links, timeFromProp(v.Props)), nil
}

// collectionFromVertex maps a raw collection row into the domain entity
func collectionFromVertex(v VertexRecord) (*entities.Collection, error) {
	id, err := valueobjects.NewVertexIDFromString(v.ID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("collection vertex has no valid id")
	}
	name, _ := v.Props["name"].(string)
	return entities.ReconstructCollection(id, name), nil
}

// accountFromVertex maps a raw account row into the domain entity
func accountFromVertex(v VertexRecord) (*entities.Account, error) {
	id, err := valueobjects.NewVertexIDFromString(v.ID)
	if err != nil {
		return nil, pkgerrors.NewInternalError("account vertex has no valid id")
	}
	uuid, _ := v.Props["uuid"].(string)
	return entities.ReconstructAccount(id, uuid, timeFromProp(v.Props)), nil
}

// timeFromProp reads the created_at epoch-millisecond property
func timeFromProp(props map[string]any) time.Time {
	millis, ok := props["created_at"].(int64)
	if !ok {
		return time.Time{}
	}
	return time.UnixMilli(millis)
}
