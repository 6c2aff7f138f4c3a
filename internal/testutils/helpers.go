package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/guessr/pkg/adapters/memory"
	"github.com/stretchr/testify/require"
)

// FourCharacters serves four characters over a single trait with values 1,1,5,5.
// The root question splits it at 3 into {Alice, Bob} and {Carol, Dave}, both leaves.
func FourCharacters() *memory.Provider {
	return memory.NewProvider(
		[]string{"Names", "power_level"},
		[]string{"Alice", "1"},
		[]string{"Bob", "1"},
		[]string{"Carol", "5"},
		[]string{"Dave", "5"},
	)
}

// Ladder serves four characters with distinct values 1..4 on one trait.
// Every character can be told apart, so the tree is three levels deep.
func Ladder() *memory.Provider {
	return memory.NewProvider(
		[]string{"Names", "height"},
		[]string{"A", "1"},
		[]string{"B", "2"},
		[]string{"C", "3"},
		[]string{"D", "4"},
	)
}

// Identical serves characters that cannot be told apart by any trait.
func Identical() *memory.Provider {
	return memory.NewProvider(
		[]string{"Names", "speed"},
		[]string{"Twin A", "2"},
		[]string{"Twin B", "2"},
	)
}

// AnimeCSV is a small catalog with mixed, missing and non-numeric columns.
const AnimeCSV = `Names,Anime,is_pirate,uses_sword,has_straw_hat,bounty_millions,wears_glasses
Monkey D. Luffy,One Piece,1,0,1,3000,0
Roronoa Zoro,One Piece,1,1,0,1111,0
Nami,One Piece,1,0,0,366,0
Naruto Uzumaki,Naruto,0,0,0,,0
Sasuke Uchiha,Naruto,0,1,0,,0
L Lawliet,Death Note,0,0,0,,0
Light Yagami,Death Note,0,0,0,,0
Ichigo Kurosaki,Bleach,0,1,0,,0
Uryu Ishida,Bleach,0,0,0,,1
,Nobody,1,1,1,1,1
`

// WriteFile writes content into a file under a fresh temp dir and returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write fixture")
	return path
}

// SequenceRandomizer replays fixed values, each reduced modulo n.
// It repeats the last value once the sequence is exhausted.
type SequenceRandomizer struct {
	Values []int
	calls  int
}

// Intn implements ports.Randomizer.
func (s *SequenceRandomizer) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	i := s.calls
	if i >= len(s.Values) {
		i = len(s.Values) - 1
	}
	s.calls++
	return s.Values[i] % n
}

// Calls returns how many values were drawn.
func (s *SequenceRandomizer) Calls() int {
	return s.calls
}
