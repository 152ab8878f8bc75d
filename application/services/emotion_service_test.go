package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/application/commands"
	"keepsake-backend/application/queries"
	pkgerrors "keepsake-backend/pkg/errors"
)

func TestEmotionService_AppendEmotion_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	media := f.ingest(t, commands.IngestMediaCommand{Path: "a.jpg", Mimetype: "image/jpeg", Collection: "present"})

	view, err := f.emotions.AppendEmotion(ctx, commands.AppendEmotionCommand{
		AccountID: testViewer,
		MediaID:   media.ID,
		Emotions:  "happy,accepted,valued",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"happy,accepted,valued"}, view.Emotions)
	assert.Equal(t, 1, f.mediaRepo.appendCalls)

	// Annotations accumulate
	view, err = f.emotions.AppendEmotion(ctx, commands.AppendEmotionCommand{
		AccountID: testViewer,
		MediaID:   media.ID,
		Emotions:  "calm,warm,safe",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"happy,accepted,valued", "calm,warm,safe"}, view.Emotions)
}

func TestEmotionService_AppendEmotion_Malformed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	media := f.ingest(t, commands.IngestMediaCommand{Path: "a.jpg", Mimetype: "image/jpeg", Collection: "present"})

	for _, raw := range []string{
		"happy,accepted-valued",
		"happy,accepted",
		"happy,accepted,valued,extra",
		"Happy,Accepted,Valued",
		"happy, accepted, valued",
		"",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := f.emotions.AppendEmotion(ctx, commands.AppendEmotionCommand{
				AccountID: testViewer,
				MediaID:   media.ID,
				Emotions:  raw,
			})
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}

	// Nothing was persisted for any of the rejected strings
	assert.Equal(t, 0, f.mediaRepo.appendCalls)
}

func TestEmotionService_AppendEmotion_ForeignMedia(t *testing.T) {
	f := newFixture(t)

	media := f.ingest(t, commands.IngestMediaCommand{Path: "a.jpg", Mimetype: "image/jpeg", Collection: "present"})

	_, err := f.emotions.AppendEmotion(context.Background(), commands.AppendEmotionCommand{
		AccountID: "someone-else",
		MediaID:   media.ID,
		Emotions:  "happy,accepted,valued",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestEmotionService_EmotionalLinks_Buckets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.ingest(t, commands.IngestMediaCommand{Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present"})
	a := f.ingest(t, commands.IngestMediaCommand{Path: "a.jpg", Mimetype: "image/jpeg", Collection: "memories"})
	b := f.ingest(t, commands.IngestMediaCommand{Path: "b.jpg", Mimetype: "image/jpeg", Collection: "memories"})
	f.ingest(t, commands.IngestMediaCommand{Path: "silent.jpg", Mimetype: "image/jpeg", Collection: "memories"})

	annotate := func(mediaID, emotions string) {
		_, err := f.emotions.AppendEmotion(ctx, commands.AppendEmotionCommand{
			AccountID: testViewer, MediaID: mediaID, Emotions: emotions,
		})
		require.NoError(t, err)
	}

	annotate(target.ID, "joy,calm,warm")
	// "joyful" matches "joy" by substring; the second annotation matches again,
	// so a lands in the first bucket twice
	annotate(a.ID, "joyful,quiet,sad")
	annotate(a.ID, "sad,joy,flat")
	annotate(b.ID, "calm,warm,bright")

	view, err := f.emotions.EmotionalLinks(ctx, testViewer, target.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{a.ID, a.ID}, view.Buckets[0])
	assert.Equal(t, []string{b.ID}, view.Buckets[1])
	assert.Equal(t, []string{b.ID}, view.Buckets[2])
}

func TestEmotionService_EmotionalLinks_ExcludesSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := f.ingest(t, commands.IngestMediaCommand{Path: "target.jpg", Mimetype: "image/jpeg", Collection: "present"})
	_, err := f.emotions.AppendEmotion(ctx, commands.AppendEmotionCommand{
		AccountID: testViewer, MediaID: target.ID, Emotions: "joy,calm,warm",
	})
	require.NoError(t, err)

	view, err := f.emotions.EmotionalLinks(ctx, testViewer, target.ID)
	require.NoError(t, err)
	assert.Equal(t, queries.EmotionalLinksView{Buckets: [3][]string{{}, {}, {}}}, *view)
}

func TestEmotionService_EmotionalLinks_PastEraTarget(t *testing.T) {
	f := newFixture(t)

	target := f.ingest(t, commands.IngestMediaCommand{Path: "old.jpg", Mimetype: "image/jpeg", Collection: "memories"})

	_, err := f.emotions.EmotionalLinks(context.Background(), testViewer, target.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Contains(t, err.Error(), "links can only be generated for media from the present")
}
