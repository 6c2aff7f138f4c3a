package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/guessr/pkg/domain"
)

// Store implements ports.GameStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Game
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Game),
	}
}

// Save keeps a copy of the game so later caller mutations do not leak in.
func (s *Store) Save(ctx context.Context, sessionID string, game *domain.Game) error {
	copied := game.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves a copy of the game.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game.Snapshot(), nil
}

// Delete removes the game.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns known sessions in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}
