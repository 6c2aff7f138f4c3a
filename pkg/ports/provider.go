package ports

import (
	"context"

	"github.com/aretw0/guessr/pkg/domain"
)

// DataProvider defines how the engine obtains the character table.
// It is called on every game start, so implementations must return fresh data each time.
type DataProvider interface {
	// Load reads and validates the table.
	// Read failures are reported as domain.ErrDataSourceUnavailable.
	Load(ctx context.Context) (*domain.Dataset, error)
}

// DataProviderFunc adapts a function to the DataProvider interface.
type DataProviderFunc func(ctx context.Context) (*domain.Dataset, error)

// Load calls f(ctx).
func (f DataProviderFunc) Load(ctx context.Context) (*domain.Dataset, error) {
	return f(ctx)
}

// Randomizer is the randomness source used by the engine. *math/rand.Rand satisfies it.
type Randomizer interface {
	// Intn returns a non-negative pseudo-random number in [0,n).
	Intn(n int) int
}
