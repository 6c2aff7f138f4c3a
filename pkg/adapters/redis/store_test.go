package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/testutils"
	"github.com/aretw0/guessr/pkg/adapters/redis"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunGameStoreContract(t, redis.NewStore(client, redis.WithPrefix("test:")))
}

func TestStore_RoundTripsTrainedGame(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewStore(client)
	ctx := context.Background()

	eng, err := guessr.New(guessr.WithProvider(testutils.Ladder()), guessr.WithStore(store))
	require.NoError(t, err)
	eng.Start(ctx, "p1")
	assert.Equal(t, "Is your character known for the trait 'height'?", eng.Answer(ctx, "p1", "yes"))

	game, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, game.Tree)
	require.NotNil(t, game.Dataset)
	assert.Equal(t, []string{"A", "B", "C", "D"}, game.Dataset.Characters)
	assert.Len(t, game.Tree.Nodes, 7)
	assert.Equal(t, 2, game.CurrentNode)
	assert.Equal(t, []string{"B", "C", "D"}, game.Remaining)
	require.Len(t, game.Turns, 1)
	assert.Equal(t, "yes", game.Turns[0].Answer)
}

func TestStore_TTL(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewStore(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s", domain.NewGame("s")))
	assert.Equal(t, time.Minute, mr.TTL("guessr:game:s"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewStore(client)

	require.NoError(t, mr.Set("guessr:game:broken", "{not json"))
	_, err := store.Load(context.Background(), "broken")
	assert.ErrorContains(t, err, "failed to unmarshal game")
}

func TestStore_ReplicasShareGames(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	replica := func() *guessr.Engine {
		t.Helper()
		eng, err := guessr.New(
			guessr.WithProvider(testutils.FourCharacters()),
			guessr.WithStore(redis.NewStore(client)),
			guessr.WithLocker(redis.NewLocker(client, "", redis.WithRetryInterval(10*time.Millisecond))),
			guessr.WithRandomizer(&testutils.SequenceRandomizer{Values: []int{0}}),
		)
		require.NoError(t, err)
		return eng
	}
	a, b := replica(), replica()

	assert.Equal(t, "Is your character known for the trait 'power level'?", a.Start(ctx, "shared"))
	assert.Equal(t, "I've run out of questions, so I'll take a guess: 'Carol'?", b.Answer(ctx, "shared", "yes"))
	assert.Equal(t, "My guess was wrong. Let's continue! Is your character known for the trait 'power level'?", a.Answer(ctx, "shared", "no"))

	sessions, err := b.Sessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, sessions)

	require.NoError(t, a.End(ctx, "shared"))
	_, err = b.Inspect(ctx, "shared")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
