package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/entities"
	"keepsake-backend/domain/core/validators"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// MediaService runs the media ingestion pipeline and the media lifecycle
// operations built on top of it
type MediaService struct {
	mediaRepo   ports.MediaRepository
	dimRepo     ports.DimensionRepository
	collRepo    ports.CollectionRepository
	accountRepo ports.AccountRepository
	validator   *validators.MediaValidator
	publisher   ports.EventPublisher
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(
	mediaRepo ports.MediaRepository,
	dimRepo ports.DimensionRepository,
	collRepo ports.CollectionRepository,
	accountRepo ports.AccountRepository,
	validator *validators.MediaValidator,
	publisher ports.EventPublisher,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *MediaService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MediaService{
		mediaRepo:   mediaRepo,
		dimRepo:     dimRepo,
		collRepo:    collRepo,
		accountRepo: accountRepo,
		validator:   validator,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger,
	}
}

// Ingest stores a media item and links it along every supplied dimension.
// The media vertex is created first so it has a stable id for edge targets;
// a failure after that point surfaces as a partial write rather than being
// rolled back.
func (s *MediaService) Ingest(ctx context.Context, cmd commands.IngestMediaCommand) (*queries.MediaView, error) {
	if err := cmd.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	if err := s.validator.ValidateIngest(cmd.Path, cmd.Mimetype, cmd.Collection, map[string][]string{
		"tags":   cmd.Tags,
		"people": cmd.People,
		"places": cmd.Places,
		"times":  cmd.Times,
	}); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	if _, err := s.accountRepo.GetByUUID(ctx, cmd.AccountID); err != nil {
		return nil, err
	}

	media, err := entities.NewMediaWithConfig(cmd.AccountID, cmd.Path, cmd.Mimetype, cmd.Collection, s.cfg)
	if err != nil {
		return nil, err
	}

	if err := s.mediaRepo.Save(ctx, cmd.AccountID, media); err != nil {
		return nil, err
	}

	// From here on the media vertex exists; any failure leaves partial
	// graph state behind
	if err := s.linkDimensions(ctx, cmd, media.ID()); err != nil {
		return nil, pkgerrors.NewPartialWriteError(media.ID().String(), err)
	}

	collection, err := s.collRepo.GetOrCreate(ctx, cmd.AccountID, cmd.Collection)
	if err != nil {
		return nil, pkgerrors.NewPartialWriteError(media.ID().String(), err)
	}
	if err := s.collRepo.AttachMedia(ctx, collection.ID(), media.ID()); err != nil {
		return nil, pkgerrors.NewPartialWriteError(media.ID().String(), err)
	}

	for _, rawID := range cmd.Links {
		linkedID, err := valueobjects.NewVertexIDFromString(rawID)
		if err != nil {
			return nil, pkgerrors.NewPartialWriteError(media.ID().String(), err)
		}
		if err := s.mediaRepo.Link(ctx, media.ID(), linkedID); err != nil {
			return nil, pkgerrors.NewPartialWriteError(media.ID().String(), err)
		}
	}

	s.publishEvents(ctx, media)

	s.logger.Info("Media ingested",
		zap.String("mediaID", media.ID().String()),
		zap.String("accountID", cmd.AccountID),
		zap.String("collection", cmd.Collection),
	)

	return s.hydrate(ctx, media.ID())
}

// linkDimensions resolves or creates each dimension vertex and its edge.
// Values are case-normalized and de-duplicated within one call.
func (s *MediaService) linkDimensions(ctx context.Context, cmd commands.IngestMediaCommand, mediaID valueobjects.VertexID) error {
	byKind := map[valueobjects.DimensionKind][]string{
		valueobjects.DimensionTag:    cmd.Tags,
		valueobjects.DimensionPerson: cmd.People,
		valueobjects.DimensionPlace:  cmd.Places,
		valueobjects.DimensionTime:   cmd.Times,
	}

	for _, kind := range valueobjects.AllDimensionKinds {
		seen := make(map[string]bool)
		for _, raw := range byKind[kind] {
			value, err := valueobjects.NormalizeDimensionValue(raw)
			if err != nil {
				return err
			}
			if seen[value] {
				continue
			}
			seen[value] = true

			dimID, err := s.dimRepo.GetOrCreate(ctx, cmd.AccountID, kind, value)
			if err != nil {
				return fmt.Errorf("resolving %s %q: %w", kind, value, err)
			}
			if err := s.dimRepo.Attach(ctx, mediaID, dimID, kind); err != nil {
				return fmt.Errorf("attaching %s %q: %w", kind, value, err)
			}
		}
	}

	return nil
}

// LinkMedia relates two existing media items in both directions
func (s *MediaService) LinkMedia(ctx context.Context, cmd commands.LinkMediaCommand) error {
	if err := cmd.Validate(); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	sourceID, err := valueobjects.NewVertexIDFromString(cmd.SourceID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	targetID, err := valueobjects.NewVertexIDFromString(cmd.TargetID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	for _, id := range []valueobjects.VertexID{sourceID, targetID} {
		owned, err := s.mediaRepo.OwnedBy(ctx, cmd.AccountID, id)
		if err != nil {
			return err
		}
		if !owned {
			return pkgerrors.NewNotFoundError("media")
		}
	}

	if err := s.mediaRepo.Link(ctx, sourceID, targetID); err != nil {
		return err
	}

	s.logger.Info("Media linked",
		zap.String("sourceID", cmd.SourceID),
		zap.String("targetID", cmd.TargetID),
	)

	return nil
}

// Destroy removes a media item and cascades its edges
func (s *MediaService) Destroy(ctx context.Context, cmd commands.DestroyMediaCommand) error {
	if err := cmd.Validate(); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	mediaID, err := valueobjects.NewVertexIDFromString(cmd.MediaID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	owned, err := s.mediaRepo.OwnedBy(ctx, cmd.AccountID, mediaID)
	if err != nil {
		return err
	}
	if !owned {
		return pkgerrors.NewNotFoundError("media")
	}

	if err := s.mediaRepo.Delete(ctx, mediaID); err != nil {
		return err
	}

	s.logger.Info("Media destroyed",
		zap.String("mediaID", cmd.MediaID),
		zap.String("accountID", cmd.AccountID),
	)

	return nil
}

// GetMedia retrieves a fully hydrated media record owned by the account
func (s *MediaService) GetMedia(ctx context.Context, accountID, mediaID string) (*queries.MediaView, error) {
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

	return s.hydrate(ctx, id)
}

// ListMedia retrieves summaries of all media owned by the account
func (s *MediaService) ListMedia(ctx context.Context, accountID string) ([]queries.MediaSummary, error) {
	media, err := s.mediaRepo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	summaries := make([]queries.MediaSummary, 0, len(media))
	for _, m := range media {
		summaries = append(summaries, summarize(m))
	}
	return summaries, nil
}

// CollectionMedia retrieves summaries of all media in the account's named collection
func (s *MediaService) CollectionMedia(ctx context.Context, accountID, name string) ([]queries.MediaSummary, error) {
	if err := s.validator.ValidateCollectionName(name); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	media, err := s.collRepo.MediaIn(ctx, accountID, name)
	if err != nil {
		return nil, err
	}

	summaries := make([]queries.MediaSummary, 0, len(media))
	for _, m := range media {
		summaries = append(summaries, summarize(m))
	}
	return summaries, nil
}

// GetLinked retrieves summaries of the media explicitly related to the item
func (s *MediaService) GetLinked(ctx context.Context, accountID, mediaID string) ([]queries.MediaSummary, error) {
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

	linked, err := s.mediaRepo.GetLinked(ctx, id)
	if err != nil {
		return nil, err
	}

	summaries := make([]queries.MediaSummary, 0, len(linked))
	for _, m := range linked {
		summaries = append(summaries, summarize(m))
	}
	return summaries, nil
}

// hydrate assembles the full media view: dimension lists, combined prefixed
// tag names, emotions and explicit relations
func (s *MediaService) hydrate(ctx context.Context, id valueobjects.VertexID) (*queries.MediaView, error) {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &queries.MediaView{
		MediaSummary: summarize(media),
		Collection:   media.Collection(),
		Emotions:     []string{},
		TagNames:     []string{},
		Linked:       []queries.MediaSummary{},
	}

	for _, e := range media.Emotions() {
		view.Emotions = append(view.Emotions, e.String())
	}

	for _, kind := range valueobjects.AllDimensionKinds {
		values, err := s.dimRepo.ValuesFor(ctx, id, kind)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(values))
		for _, v := range values {
			names = append(names, v.Value)
			view.TagNames = append(view.TagNames, kind.Prefixed(v.Value))
		}
		switch kind {
		case valueobjects.DimensionTag:
			view.Tags = names
		case valueobjects.DimensionPerson:
			view.People = names
		case valueobjects.DimensionPlace:
			view.Places = names
		case valueobjects.DimensionTime:
			view.Times = names
		}
	}

	linked, err := s.mediaRepo.GetLinked(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, m := range linked {
		view.Linked = append(view.Linked, summarize(m))
	}

	return view, nil
}

// publishEvents publishes the entity's uncommitted events, logging failures
// without failing the operation
func (s *MediaService) publishEvents(ctx context.Context, media *entities.Media) {
	events := media.GetUncommittedEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.PublishBatch(ctx, events); err != nil {
		s.logger.Warn("Failed to publish media events", zap.Error(err))
		return
	}
	media.MarkEventsAsCommitted()
}

// summarize maps a media entity to its summary read model
func summarize(m *entities.Media) queries.MediaSummary {
	return queries.MediaSummary{
		ID:        m.ID().String(),
		Path:      m.Path(),
		Mimetype:  m.Mimetype(),
		Era:       m.Era().String(),
		CreatedAt: m.CreatedAt(),
	}
}
