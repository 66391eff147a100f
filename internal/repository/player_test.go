package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		forEachBackend(t, func(t *testing.T, ctx context.Context, r repos) {
			// Given: a stored player
			player := &entity.Player{
				ID:     "123",
				Name:   "quiet-heron",
				GameID: "g1",
				Color:  "black",
			}
			require.NoError(t, r.players.CreateOrUpdate(ctx, player))

			// When: GetByID is called with existing ID
			retrievedPlayer, err := r.players.GetByID(ctx, player.ID)

			// Then: the retrieved player should match the saved player
			require.NoError(t, err)
			assert.Equal(t, player, retrievedPlayer)
		})
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		forEachBackend(t, func(t *testing.T, ctx context.Context, r repos) {
			// When: GetByID is called with non-existent ID
			retrievedPlayer, err := r.players.GetByID(ctx, "9999999")

			// Then: an ErrPlayerNotFound error should be returned
			require.ErrorIs(t, err, ErrPlayerNotFound)
			assert.Nil(t, retrievedPlayer)
		})
	})
}

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, r repos) {
		// Given: a player in a game
		player := &entity.Player{ID: "123", GameID: "g1", Color: "white"}
		require.NoError(t, r.players.CreateOrUpdate(ctx, player))

		// When: the player leaves and is saved again
		player.LeaveGame()
		require.NoError(t, r.players.CreateOrUpdate(ctx, player))

		// Then: the stored player is no longer in a game
		stored, err := r.players.GetByID(ctx, player.ID)
		require.NoError(t, err)
		assert.False(t, stored.InGame())
		assert.Empty(t, stored.Color)
	})
}

func TestPlayerRepository_DeleteByID(t *testing.T) {
	forEachBackend(t, func(t *testing.T, ctx context.Context, r repos) {
		player := &entity.Player{ID: "123"}
		require.NoError(t, r.players.CreateOrUpdate(ctx, player))

		require.NoError(t, r.players.DeleteByID(ctx, player.ID))

		_, err := r.players.GetByID(ctx, player.ID)
		require.ErrorIs(t, err, ErrPlayerNotFound)
		require.ErrorIs(t, r.players.DeleteByID(ctx, player.ID), ErrPlayerNotFound)
	})
}
