package ports

import (
	"context"

	"github.com/aretw0/guessr/pkg/domain"
)

// GameStore maps session IDs to game state.
type GameStore interface {
	// Save stores the game for a given session ID.
	Save(ctx context.Context, sessionID string, game *domain.Game) error

	// Load retrieves the game for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Game, error)

	// Delete removes the game for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session IDs.
	List(ctx context.Context) ([]string, error)
}

// ResultRecorder keeps a ledger of finished games.
type ResultRecorder interface {
	Record(ctx context.Context, result domain.Result) error
	Summary(ctx context.Context) (domain.Summary, error)
}
