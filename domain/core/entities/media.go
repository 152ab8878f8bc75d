package entities

import (
	"time"

	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	pkgerrors "keepsake-backend/pkg/errors"
)

// Media is the main entity representing a single photograph or recording.
// This is a rich domain model with encapsulated business logic
type Media struct {
	// Private fields ensure encapsulation
	id         valueobjects.VertexID
	accountID  string
	path       string
	mimetype   string
	collection string
	emotions   []valueobjects.EmotionTriple
	links      []valueobjects.VertexID
	createdAt  time.Time
	updatedAt  time.Time

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewMedia creates a new media item with full business rule validation
func NewMedia(accountID, path, mimetype, collection string) (*Media, error) {
	return NewMediaWithConfig(accountID, path, mimetype, collection, config.DefaultDomainConfig())
}

// NewMediaWithConfig creates a new media item with configuration
func NewMediaWithConfig(accountID, path, mimetype, collection string, cfg *config.DomainConfig) (*Media, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if accountID == "" {
		return nil, pkgerrors.NewValidationError("accountID cannot be empty")
	}
	if path == "" {
		return nil, pkgerrors.NewValidationError("media path cannot be empty")
	}
	if len(path) > cfg.MaxPathLength {
		return nil, pkgerrors.NewValidationError("media path is too long")
	}
	if collection == "" {
		return nil, pkgerrors.NewValidationError("collection name cannot be empty")
	}

	now := time.Now()
	media := &Media{
		id:         valueobjects.NewVertexID(),
		accountID:  accountID,
		path:       path,
		mimetype:   mimetype,
		collection: collection,
		emotions:   []valueobjects.EmotionTriple{},
		links:      []valueobjects.VertexID{},
		createdAt:  now,
		updatedAt:  now,
		events:     []events.DomainEvent{},
	}

	media.addEvent(events.NewMediaIngested(media.id, accountID, collection, now))

	return media, nil
}

// ReconstructMedia reconstructs a media item from repository data with preserved timestamps
func ReconstructMedia(
	id valueobjects.VertexID,
	accountID, path, mimetype, collection string,
	emotions []valueobjects.EmotionTriple,
	links []valueobjects.VertexID,
	createdAt time.Time,
) *Media {
	return &Media{
		id:         id,
		accountID:  accountID,
		path:       path,
		mimetype:   mimetype,
		collection: collection,
		emotions:   emotions,
		links:      links,
		createdAt:  createdAt,
		updatedAt:  createdAt,
		events:     []events.DomainEvent{},
	}
}

// ID returns the media's unique identifier
func (m *Media) ID() valueobjects.VertexID {
	return m.id
}

// AccountID returns the owner's ID
func (m *Media) AccountID() string {
	return m.accountID
}

// Path returns the storage path of the underlying file
func (m *Media) Path() string {
	return m.path
}

// Mimetype returns the media's MIME type
func (m *Media) Mimetype() string {
	return m.mimetype
}

// Collection returns the name of the owning collection
func (m *Media) Collection() string {
	return m.collection
}

// Era derives the media's era from its owning collection
func (m *Media) Era() valueobjects.Era {
	return valueobjects.EraForCollection(m.collection)
}

// AddEmotion appends a validated emotion annotation
func (m *Media) AddEmotion(triple valueobjects.EmotionTriple) error {
	return m.AddEmotionWithConfig(triple, config.DefaultDomainConfig())
}

// AddEmotionWithConfig appends a validated emotion annotation with configuration
func (m *Media) AddEmotionWithConfig(triple valueobjects.EmotionTriple, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if len(m.emotions) >= cfg.MaxEmotionEntries {
		return pkgerrors.NewValidationError("maximum emotion annotations reached")
	}

	m.emotions = append(m.emotions, triple)
	m.updatedAt = time.Now()

	m.addEvent(events.NewEmotionAdded(m.id, triple.String(), m.updatedAt))

	return nil
}

// LinkTo records an explicit relation to another media item
func (m *Media) LinkTo(targetID valueobjects.VertexID) error {
	return m.LinkToWithConfig(targetID, config.DefaultDomainConfig())
}

// LinkToWithConfig records an explicit relation with configuration
func (m *Media) LinkToWithConfig(targetID valueobjects.VertexID, cfg *config.DomainConfig) error {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	if !cfg.AllowSelfLinks && m.id.Equals(targetID) {
		return pkgerrors.NewValidationError("cannot link media to itself")
	}

	if !cfg.AllowDuplicateEdges {
		for _, link := range m.links {
			if link.Equals(targetID) {
				return pkgerrors.NewConflictError("link already exists")
			}
		}
	}

	m.links = append(m.links, targetID)
	m.updatedAt = time.Now()

	m.addEvent(events.NewMediaLinked(m.id, targetID, m.updatedAt))

	return nil
}

// Emotions returns all emotion annotations
func (m *Media) Emotions() []valueobjects.EmotionTriple {
	// Return a copy to maintain encapsulation
	emotions := make([]valueobjects.EmotionTriple, len(m.emotions))
	copy(emotions, m.emotions)
	return emotions
}

// Links returns the IDs of explicitly related media
func (m *Media) Links() []valueobjects.VertexID {
	links := make([]valueobjects.VertexID, len(m.links))
	copy(links, m.links)
	return links
}

// CreatedAt returns when the media was created
func (m *Media) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns when the media was last updated
func (m *Media) UpdatedAt() time.Time {
	return m.updatedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (m *Media) GetUncommittedEvents() []events.DomainEvent {
	return m.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (m *Media) MarkEventsAsCommitted() {
	m.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (m *Media) addEvent(event events.DomainEvent) {
	m.events = append(m.events, event)
}
