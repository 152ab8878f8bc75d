package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/application/commands"
	pkgerrors "keepsake-backend/pkg/errors"
)

func TestSessionService_Start_Success(t *testing.T) {
	f := newFixture(t)

	media := f.ingest(t, commands.IngestMediaCommand{Path: "a.jpg", Mimetype: "image/jpeg", Collection: "present"})

	view, err := f.sessions.Start(context.Background(), commands.StartSessionCommand{
		AccountID: testViewer,
		MediaID:   media.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, testViewer, view.AccountID)
	assert.Equal(t, media.ID, view.MediaID)
	assert.False(t, view.StartedAt.IsZero())

	require.Len(t, f.sessionLog.recorded, 1)
	assert.Equal(t, view.ID, f.sessionLog.recorded[0].ID())
}

func TestSessionService_Start_PastEraMedia(t *testing.T) {
	f := newFixture(t)

	media := f.ingest(t, commands.IngestMediaCommand{Path: "old.jpg", Mimetype: "image/jpeg", Collection: "memories"})

	_, err := f.sessions.Start(context.Background(), commands.StartSessionCommand{
		AccountID: testViewer,
		MediaID:   media.ID,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Empty(t, f.sessionLog.recorded)
}

func TestSessionService_Start_ForeignMedia(t *testing.T) {
	f := newFixture(t)

	media := f.ingest(t, commands.IngestMediaCommand{Path: "a.jpg", Mimetype: "image/jpeg", Collection: "present"})

	_, err := f.sessions.Start(context.Background(), commands.StartSessionCommand{
		AccountID: "someone-else",
		MediaID:   media.ID,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
