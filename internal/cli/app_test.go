package cli

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/guessr/internal/config"
	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/internal/testutils"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Dataset = testutils.WriteFile(t, "anime.csv", testutils.AnimeCSV)
	cfg.Seed = 7
	return cfg
}

func TestNewApp(t *testing.T) {
	cfg := testConfig(t)
	cfg.Results = filepath.Join(t.TempDir(), "results.db")

	app, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer app.Close()
	require.NotNil(t, app.Recorder)

	ctx := context.Background()
	reply, err := app.Engine.StartReply(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyQuestion, reply.Kind)

	_, err = app.Engine.QuitReply(ctx, "s1")
	require.NoError(t, err)

	summary, err := app.Recorder.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Games)
	assert.Equal(t, 1, summary.ByOutcome[domain.OutcomeQuit])

	count, err := testutil.GatherAndCount(app.Registry, "guessr_games_started_total", "guessr_games_finished_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewApp_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis = mr.Addr()

	app, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	reply, err := app.Engine.StartReply(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ReplyQuestion, reply.Kind)

	assert.True(t, mr.Exists("guessr:game:s1"), "games live in redis")
	assert.Equal(t, time.Hour, mr.TTL("guessr:game:s1"))

	other, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer other.Close()
	game, err := other.Engine.Inspect(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, game.Active, "a second app sees the same game")

	require.NoError(t, app.Close())
}

func TestNewApp_Errors(t *testing.T) {
	t.Run("unsupported dataset", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Dataset = "characters.xlsx"
		_, err := NewApp(context.Background(), cfg, logging.NewNop())
		assert.ErrorContains(t, err, "unsupported dataset format")
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		cfg := testConfig(t)
		cfg.Redis = addr
		_, err := NewApp(context.Background(), cfg, logging.NewNop())
		assert.Error(t, err)
	})
}

func TestPlay(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logging.NewNop())
	require.NoError(t, err)
	defer app.Close()

	var out bytes.Buffer
	err = Play(context.Background(), app, PlayOptions{
		Headless: true,
		Input:    strings.NewReader("maybe\nquit\n"),
		Output:   &out,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Is your character known for the trait '"))
	assert.Equal(t, "I'm sorry, I don't understand that. Please answer with 'yes', 'no', or 'don't know'.", lines[1])
	assert.Equal(t, "Thanks for playing! The game has been ended.", lines[2])
}

func TestPlay_StartFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dataset = filepath.Join(t.TempDir(), "missing.csv")
	app, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err, "the dataset is only read when a game starts")
	defer app.Close()

	var out bytes.Buffer
	err = Play(context.Background(), app, PlayOptions{Headless: true, Input: strings.NewReader(""), Output: &out})
	assert.Error(t, err)
	assert.Contains(t, out.String(), "I am unable to start the game.")
}

func TestCheck(t *testing.T) {
	path := testutils.WriteFile(t, "ladder.csv", "Names,height\nA,1\nB,2\nC,3\nD,4\nD,4\n")

	r, err := Check(context.Background(), path, "", domain.DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, Report{Dataset: path, Characters: 5, Unique: 4, Traits: 1, Nodes: 7, Leaves: 4, Depth: 3}, r)

	var buf bytes.Buffer
	r.Print(&buf)
	assert.Contains(t, buf.String(), "Characters: 5 (4 unique)")
	assert.Contains(t, buf.String(), "7 nodes, 4 leaves, depth 3")

	_, err = Check(context.Background(), testutils.WriteFile(t, "twins.csv", "Names,speed\nA,2\nB,2\n"), "", 5)
	assert.ErrorIs(t, err, domain.ErrMalformedTree)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("info", true)
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo), "quiet front ends drop info")

	logger, err = NewLogger("debug", true)
	require.NoError(t, err)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	_, err = NewLogger("loud", false)
	assert.Error(t, err)
}

func TestPlay_PipedInputIsHeadless(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logging.NewNop())
	require.NoError(t, err)
	defer app.Close()

	var out bytes.Buffer
	err = Play(context.Background(), app, PlayOptions{Input: strings.NewReader("quit\n"), Output: &out})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), ">>>", "no banner or system messages")
	assert.NotContains(t, out.String(), "> ")
}
