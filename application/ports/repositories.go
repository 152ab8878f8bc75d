package ports

import (
	"context"
	"time"

	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
)

// MediaRepository defines the interface for media persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type MediaRepository interface {
	// Save persists a new media vertex
	Save(ctx context.Context, accountID string, media *entities.Media) error

	// GetByID retrieves a fully hydrated media item by its ID
	GetByID(ctx context.Context, id valueobjects.VertexID) (*entities.Media, error)

	// GetByAccount retrieves all media reachable from an account
	GetByAccount(ctx context.Context, accountID string) ([]*entities.Media, error)

	// OwnedBy reports whether a media item belongs to the account
	OwnedBy(ctx context.Context, accountID string, id valueobjects.VertexID) (bool, error)

	// AppendEmotion persists a new emotion annotation on a media item
	AppendEmotion(ctx context.Context, id valueobjects.VertexID, emotion valueobjects.EmotionTriple) error

	// Link creates a related_to edge in both directions, skipping directions
	// that already exist
	Link(ctx context.Context, source, target valueobjects.VertexID) error

	// GetLinked retrieves the media explicitly related to the given item
	GetLinked(ctx context.Context, id valueobjects.VertexID) ([]*entities.Media, error)

	// Delete removes a media vertex and all of its edges
	Delete(ctx context.Context, id valueobjects.VertexID) error
}

// DimensionValue is a typed record for one dimension vertex
type DimensionValue struct {
	ID    valueobjects.VertexID
	Kind  valueobjects.DimensionKind
	Value string
}

// DimensionRepository defines get-or-create and traversal operations over the
// tag, person, place and time vertices of one account
type DimensionRepository interface {
	// GetOrCreate resolves the dimension vertex with the given normalized
	// value inside the account's traversal scope, creating it if absent
	GetOrCreate(ctx context.Context, accountID string, kind valueobjects.DimensionKind, value string) (valueobjects.VertexID, error)

	// Attach creates the dimension edge from media to vertex if absent
	Attach(ctx context.Context, mediaID, dimensionID valueobjects.VertexID, kind valueobjects.DimensionKind) error

	// ValuesFor retrieves all dimension vertices of one kind linked to a media item
	ValuesFor(ctx context.Context, mediaID valueobjects.VertexID, kind valueobjects.DimensionKind) ([]DimensionValue, error)

	// CountShared counts the dimension vertices of one kind shared by two media items
	CountShared(ctx context.Context, kind valueobjects.DimensionKind, a, b valueobjects.VertexID) (int, error)

	// CandidatesSharingAny lists the distinct media sharing at least one
	// dimension vertex of any kind with the given item, excluding the item
	CandidatesSharingAny(ctx context.Context, mediaID valueobjects.VertexID) ([]valueobjects.VertexID, error)
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	// GetOrCreate resolves the account's collection by name, creating it
	// and its owns edge if absent
	GetOrCreate(ctx context.Context, accountID string, name string) (*entities.Collection, error)

	// AttachMedia creates the has_media edge if absent
	AttachMedia(ctx context.Context, collectionID, mediaID valueobjects.VertexID) error

	// CollectionOf retrieves the collection owning a media item
	CollectionOf(ctx context.Context, mediaID valueobjects.VertexID) (*entities.Collection, error)

	// MediaIn retrieves all media in the account's named collection, oldest first
	MediaIn(ctx context.Context, accountID string, name string) ([]*entities.Media, error)

	// NewestIn retrieves the most recently added media in the named collection
	NewestIn(ctx context.Context, accountID string, name string) (*entities.Media, error)
}

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// Save persists a new account vertex
	Save(ctx context.Context, account *entities.Account) error

	// GetByUUID retrieves an account by its external identity
	GetByUUID(ctx context.Context, uuid string) (*entities.Account, error)

	// Exists reports whether an account with the uuid is present
	Exists(ctx context.Context, uuid string) (bool, error)
}

// ViewerState holds the sampler's per-viewer draw bookkeeping
type ViewerState struct {
	LastDrawAt time.Time
	LastPivot  string
}

// ViewerStateStore is the process-wide cooldown cache keyed by viewer id.
// Concurrent draws for the same viewer may race; last writer wins.
type ViewerStateStore interface {
	Get(viewerID string) (ViewerState, bool)
	Set(viewerID string, state ViewerState)
}

// SessionLog records viewing sessions. Sessions are journal entries rather
// than graph vertices.
type SessionLog interface {
	Record(ctx context.Context, session *entities.Session) error
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
