package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"keepsake-backend/application/ports"
	"keepsake-backend/application/queries"
	"keepsake-backend/domain/config"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

// RelationService scores how strongly other media relates to a target by
// counting shared dimension vertices, weighted per dimension
type RelationService struct {
	mediaRepo ports.MediaRepository
	dimRepo   ports.DimensionRepository
	cfg       *config.DomainConfig
	logger    *zap.Logger
}

// NewRelationService creates a new relation service
func NewRelationService(
	mediaRepo ports.MediaRepository,
	dimRepo ports.DimensionRepository,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *RelationService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &RelationService{
		mediaRepo: mediaRepo,
		dimRepo:   dimRepo,
		cfg:       cfg,
		logger:    logger,
	}
}

// DefaultWeights returns the configured per-dimension multipliers
func (s *RelationService) DefaultWeights() valueobjects.Weights {
	return valueobjects.Weights{
		Tags:   s.cfg.DefaultTagWeight,
		People: s.cfg.DefaultPersonWeight,
		Places: s.cfg.DefaultPlaceWeight,
		Times:  s.cfg.DefaultTimeWeight,
	}
}

// ScoreRelated ranks every media item sharing at least one dimension vertex
// with the target. Candidates with no shared vertices at all are dropped;
// the rest are sorted by descending weighted score. Pure read.
func (s *RelationService) ScoreRelated(
	ctx context.Context,
	accountID string,
	mediaID string,
	weights valueobjects.Weights,
) ([]queries.RelatedMediaView, error) {
	targetID, err := valueobjects.NewVertexIDFromString(mediaID)
	if err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	owned, err := s.mediaRepo.OwnedBy(ctx, accountID, targetID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, pkgerrors.NewNotFoundError("media")
	}

	candidates, err := s.dimRepo.CandidatesSharingAny(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("gathering candidates: %w", err)
	}

	results := make([]queries.RelatedMediaView, 0, len(candidates))
	for _, candidateID := range candidates {
		if candidateID.Equals(targetID) {
			continue
		}

		view, err := s.scoreCandidate(ctx, targetID, candidateID, weights)
		if err != nil {
			return nil, err
		}
		if view.TotalCount == 0 {
			continue
		}
		results = append(results, view)
	}

	// Ties stay in candidate discovery order so identical inputs rank
	// identically
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].WeightedScore > results[j].WeightedScore
	})

	s.logger.Debug("Scored related media",
		zap.String("mediaID", mediaID),
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(results)),
	)

	return results, nil
}

// scoreCandidate counts the shared vertices per dimension and applies the weights
func (s *RelationService) scoreCandidate(
	ctx context.Context,
	targetID, candidateID valueobjects.VertexID,
	weights valueobjects.Weights,
) (queries.RelatedMediaView, error) {
	var view queries.RelatedMediaView

	for _, kind := range valueobjects.AllDimensionKinds {
		count, err := s.dimRepo.CountShared(ctx, kind, targetID, candidateID)
		if err != nil {
			return view, fmt.Errorf("counting shared %s vertices: %w", kind, err)
		}

		switch kind {
		case valueobjects.DimensionTag:
			view.TagCount = count
		case valueobjects.DimensionPerson:
			view.PersonCount = count
		case valueobjects.DimensionPlace:
			view.PlaceCount = count
		case valueobjects.DimensionTime:
			view.TimeCount = count
		}

		view.TotalCount += count
		view.WeightedScore += float64(count) * weights.For(kind)
	}

	if view.TotalCount == 0 {
		return view, nil
	}

	candidate, err := s.mediaRepo.GetByID(ctx, candidateID)
	if err != nil {
		return view, err
	}
	view.Media = summarize(candidate)

	return view, nil
}
