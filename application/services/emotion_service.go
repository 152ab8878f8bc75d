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

// EmotionService validates and appends emotion annotations and matches media
// by per-position emotion-word overlap. Matching is independent of the graph
// store; it operates on records already fetched for the account.
type EmotionService struct {
	media     *MediaService
	mediaRepo ports.MediaRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewEmotionService creates a new emotion service
func NewEmotionService(
	media *MediaService,
	mediaRepo ports.MediaRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *EmotionService {
	return &EmotionService{
		media:     media,
		mediaRepo: mediaRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// AppendEmotion validates the three-word pattern, appends the annotation and
// returns the updated record. A malformed string is rejected before any write.
func (s *EmotionService) AppendEmotion(ctx context.Context, cmd commands.AppendEmotionCommand) (*queries.MediaView, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	triple, err := valueobjects.NewEmotionTriple(cmd.Emotions)
	if err != nil {
		return nil, err
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
	if err := media.AddEmotion(triple); err != nil {
		return nil, err
	}

	if err := s.mediaRepo.AppendEmotion(ctx, mediaID, triple); err != nil {
		return nil, err
	}

	s.publishMediaEvents(ctx, media)

	s.logger.Info("Emotion appended",
		zap.String("mediaID", cmd.MediaID),
		zap.String("emotions", triple.String()),
	)

	return s.media.GetMedia(ctx, cmd.AccountID, cmd.MediaID)
}

// EmotionalLinks matches the target against the rest of the account's
// library. For each (target annotation, candidate annotation) pair, each of
// the target's three positional words that appears in the candidate's
// annotation puts the candidate's id into that position's bucket. Duplicates
// are kept; self-matches are excluded; the target must not be past-era.
func (s *EmotionService) EmotionalLinks(ctx context.Context, accountID, mediaID string) (*queries.EmotionalLinksView, error) {
	target, err := s.targetForMatching(ctx, accountID, mediaID)
	if err != nil {
		return nil, err
	}

	library, err := s.mediaRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return s.matchByEmotion(target, library)
}

// matchByEmotion computes the three positional overlap buckets
func (s *EmotionService) matchByEmotion(target *entities.Media, library []*entities.Media) (*queries.EmotionalLinksView, error) {
	if target.Era() == valueobjects.EraPast {
		return nil, pkgerrors.NewValidationError("links can only be generated for media from the present")
	}

	view := &queries.EmotionalLinksView{
		Buckets: [3][]string{{}, {}, {}},
	}

	targetEmotions := target.Emotions()
	for _, candidate := range library {
		if candidate.ID().Equals(target.ID()) {
			continue
		}
		for _, candidateEmotion := range candidate.Emotions() {
			for _, targetEmotion := range targetEmotions {
				words := targetEmotion.Words()
				for i, word := range words {
					if candidateEmotion.Contains(word) {
						view.Buckets[i] = append(view.Buckets[i], candidate.ID().String())
					}
				}
			}
		}
	}

	return view, nil
}

// targetForMatching resolves the target media with ownership enforced
func (s *EmotionService) targetForMatching(ctx context.Context, accountID, mediaID string) (*entities.Media, error) {
	id, err := valueobjects.NewVertexIDFromString(mediaID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	owned, err := s.mediaRepo.OwnedBy(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, pkgerrors.NewNotFoundError("media")
	}

	return s.mediaRepo.GetByID(ctx, id)
}

// publishMediaEvents publishes uncommitted entity events, logging failures
func (s *EmotionService) publishMediaEvents(ctx context.Context, media *entities.Media) {
	events := media.GetUncommittedEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.PublishBatch(ctx, events); err != nil {
		s.logger.Warn("Failed to publish emotion events", zap.Error(err))
		return
	}
	media.MarkEventsAsCommitted()
}
