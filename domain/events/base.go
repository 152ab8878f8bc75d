package events

import (
	"time"

	"keepsake-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// Media Events

// MediaIngested is raised when a media item and its dimension links are stored
type MediaIngested struct {
	BaseEvent
	MediaID    valueobjects.VertexID `json:"media_id"`
	AccountID  string                `json:"account_id"`
	Collection string                `json:"collection"`
}

// NewMediaIngested creates a MediaIngested event
func NewMediaIngested(mediaID valueobjects.VertexID, accountID, collection string, timestamp time.Time) MediaIngested {
	return MediaIngested{
		BaseEvent: BaseEvent{
			AggregateID: mediaID.String(),
			EventType:   "media.ingested",
			Timestamp:   timestamp,
			Version:     1,
		},
		MediaID:    mediaID,
		AccountID:  accountID,
		Collection: collection,
	}
}

// MediaLinked is raised when two media items are explicitly related
type MediaLinked struct {
	BaseEvent
	SourceID valueobjects.VertexID `json:"source_id"`
	TargetID valueobjects.VertexID `json:"target_id"`
}

// NewMediaLinked creates a MediaLinked event
func NewMediaLinked(sourceID, targetID valueobjects.VertexID, timestamp time.Time) MediaLinked {
	return MediaLinked{
		BaseEvent: BaseEvent{
			AggregateID: sourceID.String(),
			EventType:   "media.linked",
			Timestamp:   timestamp,
			Version:     1,
		},
		SourceID: sourceID,
		TargetID: targetID,
	}
}

// EmotionAdded is raised when an emotion annotation is appended to a media item
type EmotionAdded struct {
	BaseEvent
	MediaID  valueobjects.VertexID `json:"media_id"`
	Emotions string                `json:"emotions"`
}

// NewEmotionAdded creates an EmotionAdded event
func NewEmotionAdded(mediaID valueobjects.VertexID, emotions string, timestamp time.Time) EmotionAdded {
	return EmotionAdded{
		BaseEvent: BaseEvent{
			AggregateID: mediaID.String(),
			EventType:   "media.emotion_added",
			Timestamp:   timestamp,
			Version:     1,
		},
		MediaID:  mediaID,
		Emotions: emotions,
	}
}

// MediaDestroyed is raised when a media item and its edges are removed
type MediaDestroyed struct {
	BaseEvent
	MediaID   valueobjects.VertexID `json:"media_id"`
	AccountID string                `json:"account_id"`
}

// NewMediaDestroyed creates a MediaDestroyed event
func NewMediaDestroyed(mediaID valueobjects.VertexID, accountID string, timestamp time.Time) MediaDestroyed {
	return MediaDestroyed{
		BaseEvent: BaseEvent{
			AggregateID: mediaID.String(),
			EventType:   "media.destroyed",
			Timestamp:   timestamp,
			Version:     1,
		},
		MediaID:   mediaID,
		AccountID: accountID,
	}
}

// Session Events

// SessionStarted is raised when a viewing session begins on present-era media
type SessionStarted struct {
	BaseEvent
	SessionID string                `json:"session_id"`
	AccountID string                `json:"account_id"`
	MediaID   valueobjects.VertexID `json:"media_id"`
}

// NewSessionStarted creates a SessionStarted event
func NewSessionStarted(sessionID, accountID string, mediaID valueobjects.VertexID, timestamp time.Time) SessionStarted {
	return SessionStarted{
		BaseEvent: BaseEvent{
			AggregateID: sessionID,
			EventType:   "session.started",
			Timestamp:   timestamp,
			Version:     1,
		},
		SessionID: sessionID,
		AccountID: accountID,
		MediaID:   mediaID,
	}
}
