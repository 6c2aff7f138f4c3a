package csv_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/guessr/internal/testutils"
	"github.com/aretw0/guessr/pkg/adapters/csv"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Load(t *testing.T) {
	path := testutils.WriteFile(t, "anime.csv", testutils.AnimeCSV)

	ds, err := csv.New(path).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Characters, 9, "the nameless row is dropped")
	assert.Equal(t, "Monkey D. Luffy", ds.Characters[0])
	assert.Equal(t,
		[]string{"is_pirate", "uses_sword", "has_straw_hat", "bounty_millions", "wears_glasses"},
		ds.TraitNames(),
	)

	bounty := ds.Traits[3].Values
	assert.Equal(t, 3000.0, bounty[0])
	assert.Equal(t, domain.MissingValue, bounty[3])
}

func TestReadTable(t *testing.T) {
	table, err := csv.ReadTable(strings.NewReader("\ufeffNames, x\na, 1\nb\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Names", "x"}, table.Header)
	assert.Equal(t, [][]string{{"a", "1"}, {"b"}}, table.Rows)

	_, err = csv.ReadTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestProvider_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := csv.New(filepath.Join(t.TempDir(), "missing.csv")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrDataSourceUnavailable)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := csv.New(testutils.WriteFile(t, "empty.csv", "")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrDataSourceUnavailable)
	})

	t.Run("no name column", func(t *testing.T) {
		_, err := csv.New(testutils.WriteFile(t, "bad.csv", "Character,x\na,1\n")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrMissingNameColumn)
	})

	t.Run("text only", func(t *testing.T) {
		_, err := csv.New(testutils.WriteFile(t, "text.csv", "Names,Anime\na,Bleach\n")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrNoUsableTraits)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := csv.New(testutils.WriteFile(t, "anime.csv", testutils.AnimeCSV)).Load(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
