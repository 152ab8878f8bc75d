package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
	"keepsake-backend/pkg/observability"
)

// No-draw reasons surfaced to the caller. A no-draw is a valid outcome, not
// an error; the caller re-displays the previous result.
const (
	NoDrawCooldown     = "cooldown"
	NoDrawSamePivot    = "pivot unchanged"
	NoDrawNoPivot      = "no eligible pivot"
	NoDrawPoolTooSmall = "candidate pool too small"
)

// sampleDrawn labels the successful outcome on the samples counter
const sampleDrawn = "drawn"

// IntnFunc returns a uniformly random int in [0, n). Injected so draws are
// deterministic under test.
type IntnFunc func(n int) int

// SamplerService draws a small stratified sample of past-era media around a
// present-era pivot, rate-limited per viewer
type SamplerService struct {
	media     *MediaService
	relations *RelationService
	collRepo  ports.CollectionRepository
	mediaRepo ports.MediaRepository
	store     ports.ViewerStateStore
	cfg       *config.DomainConfig
	logger    *zap.Logger
	metrics   *observability.Metrics
	intn      IntnFunc
	now       func() time.Time
}

// NewSamplerService creates a new sampler service
func NewSamplerService(
	media *MediaService,
	relations *RelationService,
	collRepo ports.CollectionRepository,
	mediaRepo ports.MediaRepository,
	store ports.ViewerStateStore,
	cfg *config.DomainConfig,
	logger *zap.Logger,
	metrics *observability.Metrics,
	intn IntnFunc,
	now func() time.Time,
) *SamplerService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if now == nil {
		now = time.Now
	}
	return &SamplerService{
		media:     media,
		relations: relations,
		collRepo:  collRepo,
		mediaRepo: mediaRepo,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
		intn:      intn,
		now:       now,
	}
}

// SampleForPresentation picks a present-era pivot and five past-era draws
// stratified across the ranked relation scores. Viewers are held to one
// attempt per cooldown window; the window restarts on every attempt that
// gets past the cooldown gate, drawn or not.
func (s *SamplerService) SampleForPresentation(
	ctx context.Context,
	viewerID string,
	targetMediaID string,
	drawIfNew bool,
) (*queries.SampleView, error) {
	now := s.now()

	state, known := s.store.Get(viewerID)
	if known && now.Sub(state.LastDrawAt) < s.cfg.SampleDrawCooldown {
		s.observe(NoDrawCooldown)
		return &queries.SampleView{Drawn: false, Reason: NoDrawCooldown}, nil
	}

	pivotID, reason, err := s.resolvePivot(ctx, viewerID, targetMediaID, drawIfNew, state)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		s.touch(viewerID, state.LastPivot, now)
		s.observe(reason)
		return &queries.SampleView{Drawn: false, Reason: reason}, nil
	}

	ranked, err := s.relations.ScoreRelated(ctx, viewerID, pivotID, s.relations.DefaultWeights())
	if err != nil {
		return nil, err
	}

	pool, err := s.pastEraOnly(ctx, ranked)
	if err != nil {
		return nil, err
	}

	if len(pool) < s.cfg.MinSamplePoolSize {
		s.touch(viewerID, pivotID, now)
		s.observe(NoDrawPoolTooSmall)
		return &queries.SampleView{Drawn: false, Reason: NoDrawPoolTooSmall}, nil
	}

	pivot, err := s.media.GetMedia(ctx, viewerID, pivotID)
	if err != nil {
		return nil, err
	}

	draws := s.drawBands(pool)
	s.touch(viewerID, pivotID, now)
	s.observe(sampleDrawn)

	s.logger.Info("Sample drawn",
		zap.String("viewerID", viewerID),
		zap.String("pivotID", pivotID),
		zap.Int("poolSize", len(pool)),
	)

	return &queries.SampleView{Drawn: true, Pivot: pivot, Draws: draws}, nil
}

// RandomFromCollection picks one uniformly random media item from the
// account's named collection
func (s *SamplerService) RandomFromCollection(ctx context.Context, accountID, name string) (*queries.MediaView, error) {
	media, err := s.collRepo.MediaIn(ctx, accountID, name)
	if err != nil {
		return nil, err
	}
	if len(media) == 0 {
		return nil, pkgerrors.NewNotFoundError("collection media")
	}

	pick := media[s.intn(len(media))]
	return s.media.GetMedia(ctx, accountID, pick.ID().String())
}

// resolvePivot returns the pivot media id, or a no-draw reason
func (s *SamplerService) resolvePivot(
	ctx context.Context,
	viewerID string,
	targetMediaID string,
	drawIfNew bool,
	state ports.ViewerState,
) (string, string, error) {
	if drawIfNew {
		newest, err := s.collRepo.NewestIn(ctx, viewerID, s.cfg.PresentCollectionName)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				return "", NoDrawNoPivot, nil
			}
			return "", "", err
		}
		if newest.ID().String() == state.LastPivot {
			return "", NoDrawSamePivot, nil
		}
		return newest.ID().String(), "", nil
	}

	targetID, err := valueobjects.NewVertexIDFromString(targetMediaID)
	if err != nil {
		return "", NoDrawNoPivot, nil
	}

	media, err := s.mediaRepo.GetByID(ctx, targetID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return "", NoDrawNoPivot, nil
		}
		return "", "", err
	}

	// Only present-era media is eligible to anchor a draw
	if !media.Era().IsPresent() {
		return "", NoDrawNoPivot, nil
	}

	return media.ID().String(), "", nil
}

// pastEraOnly filters the ranked candidates to those whose owning collection
// is past-era, re-querying collection membership per candidate
func (s *SamplerService) pastEraOnly(ctx context.Context, ranked []queries.RelatedMediaView) ([]queries.MediaSummary, error) {
	pool := make([]queries.MediaSummary, 0, len(ranked))
	for _, candidate := range ranked {
		id, err := valueobjects.NewVertexIDFromString(candidate.Media.ID)
		if err != nil {
			return nil, err
		}
		collection, err := s.collRepo.CollectionOf(ctx, id)
		if err != nil {
			return nil, err
		}
		if collection.Era() == valueobjects.EraPast {
			pool = append(pool, candidate.Media)
		}
	}
	return pool, nil
}

// drawBands partitions the ranked pool into low (top 20%), middle (next 40%)
// and high (last 40%) percentile bands by rank position, then draws
// 1 + 2 + 2 random indices. Indices may repeat across draws.
func (s *SamplerService) drawBands(pool []queries.MediaSummary) []queries.MediaSummary {
	n := len(pool)
	lowEnd := int(float64(n) * s.cfg.LowBandUpperBound)
	midEnd := int(float64(n) * s.cfg.MidBandUpperBound)
	if lowEnd < 1 {
		lowEnd = 1
	}
	if midEnd <= lowEnd {
		midEnd = lowEnd + 1
	}

	draws := make([]queries.MediaSummary, 0, s.cfg.LowBandDraws+s.cfg.MidBandDraws+s.cfg.HighBandDraws)
	for i := 0; i < s.cfg.LowBandDraws; i++ {
		draws = append(draws, pool[s.intn(lowEnd)])
	}
	for i := 0; i < s.cfg.MidBandDraws; i++ {
		draws = append(draws, pool[lowEnd+s.intn(midEnd-lowEnd)])
	}
	for i := 0; i < s.cfg.HighBandDraws; i++ {
		draws = append(draws, pool[midEnd+s.intn(n-midEnd)])
	}
	return draws
}

// touch restarts the viewer's cooldown window, keeping the last pivot
func (s *SamplerService) touch(viewerID, pivotID string, now time.Time) {
	s.store.Set(viewerID, ports.ViewerState{LastDrawAt: now, LastPivot: pivotID})
}

// observe records the draw outcome when metrics are wired
func (s *SamplerService) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveSample(outcome)
	}
}
