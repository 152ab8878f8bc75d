package services

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// SessionService starts viewing sessions. Sessions anchor on present-era
// media only; the past is reached through sampling and links, never directly.
type SessionService struct {
	mediaRepo  ports.MediaRepository
	sessionLog ports.SessionLog
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	mediaRepo ports.MediaRepository,
	sessionLog ports.SessionLog,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		mediaRepo:  mediaRepo,
		sessionLog: sessionLog,
		publisher:  publisher,
		logger:     logger,
	}
}

// Start begins a session on the given media item
func (s *SessionService) Start(ctx context.Context, cmd commands.StartSessionCommand) (*queries.SessionView, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	mediaID, err := valueobjects.NewVertexIDFromString(cmd.MediaID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	owned, err := s.mediaRepo.OwnedBy(ctx, cmd.AccountID, mediaID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, pkgerrors.NewNotFoundError("media")
	}

	media, err := s.mediaRepo.GetByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	session, err := entities.NewSession(cmd.AccountID, media)
	if err != nil {
		return nil, err
	}

	if err := s.sessionLog.Record(ctx, session); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishBatch(ctx, session.GetUncommittedEvents()); err != nil {
		s.logger.Warn("Failed to publish session events", zap.Error(err))
	} else {
		session.MarkEventsAsCommitted()
	}

	s.logger.Info("Session started",
		zap.String("sessionID", session.ID()),
		zap.String("accountID", cmd.AccountID),
		zap.String("mediaID", cmd.MediaID),
	)

	return &queries.SessionView{
		ID:        session.ID(),
		AccountID: session.AccountID(),
		MediaID:   session.MediaID().String(),
		StartedAt: session.StartedAt(),
	}, nil
}
