package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keepsake-backend/application/commands"
	pkgerrors "keepsake-backend/pkg/errors"
)

func TestAccountService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("registers a new identity", func(t *testing.T) {
		view, err := f.accounts.Create(ctx, commands.CreateAccountCommand{UUID: "idp-user-42"})
		require.NoError(t, err)
		assert.NotEmpty(t, view.ID)
		assert.Equal(t, "idp-user-42", view.UUID)
	})

	t.Run("rejects a duplicate identity", func(t *testing.T) {
		_, err := f.accounts.Create(ctx, commands.CreateAccountCommand{UUID: "idp-user-42"})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConflict(err))
	})

	t.Run("rejects an empty identity", func(t *testing.T) {
		_, err := f.accounts.Create(ctx, commands.CreateAccountCommand{})
		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})
}

func TestAccountService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.accounts.Get(ctx, testViewer)
	require.NoError(t, err)
	assert.Equal(t, testViewer, view.UUID)

	_, err = f.accounts.Get(ctx, "nobody")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
