package parquet_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/guessr/pkg/adapters/parquet"
	"github.com/aretw0/guessr/pkg/domain"
	pq "github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type character struct {
	Name     string   `parquet:"Names"`
	Anime    string   `parquet:"Anime"`
	IsPirate bool     `parquet:"is_pirate"`
	Swords   int32    `parquet:"swords"`
	Bounty   *float64 `parquet:"bounty_millions,optional"`
}

func ptr(v float64) *float64 { return &v }

func writeCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "characters.parquet")
	rows := []character{
		{Name: "Monkey D. Luffy", Anime: "One Piece", IsPirate: true, Swords: 0, Bounty: ptr(3000)},
		{Name: "Roronoa Zoro", Anime: "One Piece", IsPirate: true, Swords: 3, Bounty: ptr(1111)},
		{Name: "Ichigo Kurosaki", Anime: "Bleach", Swords: 1},
	}
	require.NoError(t, pq.WriteFile(path, rows))
	return path
}

func TestProvider_Load(t *testing.T) {
	p := parquet.New(writeCatalog(t))

	ds, err := p.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Monkey D. Luffy", "Roronoa Zoro", "Ichigo Kurosaki"}, ds.Characters)
	assert.ElementsMatch(t, []string{"swords", "bounty_millions"}, ds.TraitNames(), "boolean columns are not traits")

	values := make(map[string][]float64)
	for _, tr := range ds.Traits {
		values[tr.Name] = tr.Values
	}
	assert.Equal(t, []float64{0, 3, 1}, values["swords"])
	assert.Equal(t, []float64{3000, 1111, domain.MissingValue}, values["bounty_millions"])
}

func TestProvider_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := parquet.New(filepath.Join(t.TempDir(), "nope.parquet")).Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrDataSourceUnavailable)
	})

	t.Run("wrong name column", func(t *testing.T) {
		p := parquet.New(writeCatalog(t))
		p.NameColumn = "Character"
		_, err := p.Load(context.Background())
		assert.ErrorIs(t, err, domain.ErrMissingNameColumn)
	})
}
