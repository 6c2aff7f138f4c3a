package runtime

import (
	"math/rand"
	"sync"
	"time"

	"github.com/aretw0/guessr/pkg/ports"
)

// lockedRandomizer makes a Randomizer safe to share between sessions.
type lockedRandomizer struct {
	mu  sync.Mutex
	src ports.Randomizer
}

func (r *lockedRandomizer) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// NewSeededRandomizer returns a deterministic source for seed.
// A zero seed uses the current time.
func NewSeededRandomizer(seed int64) ports.Randomizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func newTimeSeededRandomizer() ports.Randomizer {
	return &lockedRandomizer{src: NewSeededRandomizer(0)}
}
