package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/application/commands"
	"keepsake-backend/domain/core/valueobjects"
	pkgerrors "keepsake-backend/pkg/errors"
)

func TestRelationService_ScoreRelated_RanksByWeightedOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.ingest(t, commands.IngestMediaCommand{
		Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present",
		Tags:   []string{"beach", "sunset"},
		Places: []string{"shore"},
	})
	twoTags := f.ingest(t, commands.IngestMediaCommand{
		Path: "two-tags.jpg", Mimetype: "image/jpeg", Collection: "memories",
		Tags: []string{"beach", "sunset"},
	})
	onePlace := f.ingest(t, commands.IngestMediaCommand{
		Path: "one-place.jpg", Mimetype: "image/jpeg", Collection: "memories",
		Places: []string{"shore"},
	})
	f.ingest(t, commands.IngestMediaCommand{
		Path: "unrelated.jpg", Mimetype: "image/jpeg", Collection: "memories",
		Tags: []string{"mountain"},
	})

	t.Run("default weights", func(t *testing.T) {
		ranked, err := f.relations.ScoreRelated(ctx, testViewer, target.ID, f.relations.DefaultWeights())
		require.NoError(t, err)

		require.Len(t, ranked, 2)
		assert.Equal(t, twoTags.ID, ranked[0].Media.ID)
		assert.Equal(t, 2, ranked[0].TagCount)
		assert.Equal(t, 2, ranked[0].TotalCount)
		assert.Equal(t, 2.0, ranked[0].WeightedScore)

		assert.Equal(t, onePlace.ID, ranked[1].Media.ID)
		assert.Equal(t, 1, ranked[1].PlaceCount)
		assert.Equal(t, 1.0, ranked[1].WeightedScore)
	})

	t.Run("place weight flips the order", func(t *testing.T) {
		ranked, err := f.relations.ScoreRelated(ctx, testViewer, target.ID, valueobjects.Weights{
			Tags: 1, People: 1, Places: 5, Times: 1,
		})
		require.NoError(t, err)

		require.Len(t, ranked, 2)
		assert.Equal(t, onePlace.ID, ranked[0].Media.ID)
		assert.Equal(t, 5.0, ranked[0].WeightedScore)
		assert.Equal(t, twoTags.ID, ranked[1].Media.ID)
	})
}

func TestRelationService_ScoreRelated_DropsZeroOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.ingest(t, commands.IngestMediaCommand{
		Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present",
		Tags: []string{"beach"},
	})
	stray := f.ingest(t, commands.IngestMediaCommand{
		Path: "stray.jpg", Mimetype: "image/jpeg", Collection: "memories",
	})

	// A candidate the store surfaces but that shares nothing is dropped
	strayID, err := valueobjects.NewVertexIDFromString(stray.ID)
	require.NoError(t, err)
	f.dimRepo.extraCandidates = append(f.dimRepo.extraCandidates, strayID)

	ranked, err := f.relations.ScoreRelated(ctx, testViewer, target.ID, f.relations.DefaultWeights())
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRelationService_ScoreRelated_ExcludesTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.ingest(t, commands.IngestMediaCommand{
		Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present",
		Tags: []string{"beach"},
	})

	targetID, err := valueobjects.NewVertexIDFromString(target.ID)
	require.NoError(t, err)
	f.dimRepo.extraCandidates = append(f.dimRepo.extraCandidates, targetID)

	ranked, err := f.relations.ScoreRelated(ctx, testViewer, target.ID, f.relations.DefaultWeights())
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestRelationService_ScoreRelated_StableTieOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.ingest(t, commands.IngestMediaCommand{
		Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present",
		Tags: []string{"thread"},
	})

	var expected []string
	for _, path := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		view := f.ingest(t, commands.IngestMediaCommand{
			Path: path, Mimetype: "image/jpeg", Collection: "memories",
			Tags: []string{"thread"},
		})
		expected = append(expected, view.ID)
	}

	// Same inputs rank identically across runs
	for run := 0; run < 3; run++ {
		ranked, err := f.relations.ScoreRelated(ctx, testViewer, target.ID, f.relations.DefaultWeights())
		require.NoError(t, err)
		require.Len(t, ranked, 3)
		for i, view := range ranked {
			assert.Equal(t, expected[i], view.Media.ID)
		}
	}
}

func TestRelationService_ScoreRelated_ForeignMedia(t *testing.T) {
	f := newFixture(t)

	target := f.ingest(t, commands.IngestMediaCommand{
		Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present",
	})

	_, err := f.relations.ScoreRelated(context.Background(), "someone-else", target.ID, f.relations.DefaultWeights())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
