package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basit/tasklist-backend/auth"
	"github.com/basit/tasklist-backend/models"
	"github.com/basit/tasklist-backend/store"
)

func TestResolveIdentity(t *testing.T) {
	ctx := context.Background()
	users := store.NewMemory()
	tokens := auth.NewTokenIssuer("secret")

	user := &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	require.NoError(t, users.CreateUser(ctx, user))

	t.Run("no credential", func(t *testing.T) {
		got, err := auth.ResolveIdentity(ctx, tokens, users, "")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("valid credential", func(t *testing.T) {
		token, err := tokens.Issue(user.ID.String())
		require.NoError(t, err)

		got, err := auth.ResolveIdentity(ctx, tokens, users, token)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := tokens.Issue(uuid.NewString())
		require.NoError(t, err)

		got, err := auth.ResolveIdentity(ctx, tokens, users, token)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("scheme prefix is not stripped", func(t *testing.T) {
		token, err := tokens.Issue(user.ID.String())
		require.NoError(t, err)

		_, err = auth.ResolveIdentity(ctx, tokens, users, "Bearer "+token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("bad signature", func(t *testing.T) {
		token, err := auth.NewTokenIssuer("other").Issue(user.ID.String())
		require.NoError(t, err)

		_, err = auth.ResolveIdentity(ctx, tokens, users, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
