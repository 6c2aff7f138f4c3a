package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/guessr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGameStoreContract runs a suite of tests to verify that a GameStore implementation
// adheres to the defined interface contract.
func RunGameStoreContract(t *testing.T, store GameStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	newGame := func(id string) *domain.Game {
		g := domain.NewGame(id)
		g.Active = true
		g.Remaining = []string{"Alice", "Bob"}
		g.QuestionsAsked = 3
		g.CurrentNode = 2
		return g
	}

	t.Run("Save and Load", func(t *testing.T) {
		game := newGame(sessionID)

		err := store.Save(ctx, sessionID, game)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, game.CurrentNode, loaded.CurrentNode)
		assert.Equal(t, game.QuestionsAsked, loaded.QuestionsAsked)
		assert.ElementsMatch(t, game.Remaining, loaded.Remaining)
		assert.True(t, loaded.Active)
	})

	t.Run("Load Is Isolated From Later Mutation", func(t *testing.T) {
		game := newGame(sessionID)
		require.NoError(t, store.Save(ctx, sessionID, game))

		game.Remaining = game.Remaining[:1]
		game.QuestionsAsked = 99

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, loaded.Remaining, 2)
		assert.Equal(t, 3, loaded.QuestionsAsked)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, newGame(sessionID)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, newGame(id1))
		_ = store.Save(ctx, id2, newGame(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
