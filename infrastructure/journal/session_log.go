package journal

import (
	"context"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/domain/core/entities"
)

// ZapSessionLog records viewing sessions as structured journal entries.
// Sessions never become graph vertices; the journal is their only record.
type ZapSessionLog struct {
	logger *zap.Logger
}

var _ ports.SessionLog = (*ZapSessionLog)(nil)

// NewZapSessionLog creates a log-backed session journal
func NewZapSessionLog(logger *zap.Logger) *ZapSessionLog {
	return &ZapSessionLog{logger: logger}
}

// Record writes one session entry
func (l *ZapSessionLog) Record(ctx context.Context, session *entities.Session) error {
	l.logger.Info("Session started",
		zap.String("sessionID", session.ID()),
		zap.String("accountID", session.AccountID()),
		zap.String("mediaID", session.MediaID().String()),
		zap.Time("startedAt", session.StartedAt()),
	)
	return nil
}
