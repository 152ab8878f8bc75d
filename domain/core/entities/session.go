package entities

import (
	"time"

	"keepsake-backend/domain/core/valueobjects"
	"keepsake-backend/domain/events"
	pkgerrors "keepsake-backend/pkg/errors"
)

// Session marks the start of a viewing session anchored on a present-era
// media item. Sessions are journal entries, not graph vertices.
type Session struct {
	id        string
	accountID string
	mediaID   valueobjects.VertexID
	startedAt time.Time

	events []events.DomainEvent
}

// NewSession starts a session on the given media. The media must be of the
// present; the past is only ever reached through sampling and links.
func NewSession(accountID string, media *Media) (*Session, error) {
	if accountID == "" {
		return nil, pkgerrors.NewValidationError("accountID cannot be empty")
	}
	if media == nil {
		return nil, pkgerrors.NewValidationError("media cannot be nil")
	}
	if !media.Era().IsPresent() {
		return nil, pkgerrors.NewValidationError("media must be of the present to start a session")
	}

	now := time.Now()
	session := &Session{
		id:        valueobjects.NewVertexID().String(),
		accountID: accountID,
		mediaID:   media.ID(),
		startedAt: now,
		events:    []events.DomainEvent{},
	}

	session.events = append(session.events, events.NewSessionStarted(session.id, accountID, media.ID(), now))

	return session, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// AccountID returns the account the session belongs to
func (s *Session) AccountID() string {
	return s.accountID
}

// MediaID returns the anchoring media item
func (s *Session) MediaID() valueobjects.VertexID {
	return s.mediaID
}

// StartedAt returns when the session began
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// GetUncommittedEvents returns all uncommitted domain events
func (s *Session) GetUncommittedEvents() []events.DomainEvent {
	return s.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (s *Session) MarkEventsAsCommitted() {
	s.events = []events.DomainEvent{}
}
