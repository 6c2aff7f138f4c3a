package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed session lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serialises access to games by session ID.
// Per-session locks are reference counted and dropped once nobody waits on them.
type Manager struct {
	store ports.GameStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a session Manager over store.
func NewManager(store ports.GameStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking it.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry when it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing game.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Game, error) {
	var game *domain.Game
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		game, err = m.store.Load(ctx, sessionID)
		return err
	})
	return game, err
}

// Update loads the game for sessionID, or a fresh inactive one, applies fn and saves
// the result, all under the session lock. The game is saved even when fn returns an
// error, since failed operations may still change the game (an aborted game is inactive).
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(context.Context, *domain.Game) error) error {
	return m.update(ctx, sessionID, true, fn)
}

// UpdateExisting is Update for sessions that must already exist.
// It returns domain.ErrSessionNotFound without calling fn or saving anything otherwise.
func (m *Manager) UpdateExisting(ctx context.Context, sessionID string, fn func(context.Context, *domain.Game) error) error {
	return m.update(ctx, sessionID, false, fn)
}

func (m *Manager) update(ctx context.Context, sessionID string, create bool, fn func(context.Context, *domain.Game) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		game, err := m.store.Load(ctx, sessionID)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound) && create:
			game = domain.NewGame(sessionID)
		case errors.Is(err, domain.ErrSessionNotFound):
			return err
		case err != nil:
			return fmt.Errorf("failed to load session: %w", err)
		}

		fnErr := fn(ctx, game)
		if err := m.store.Save(ctx, sessionID, game); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return fnErr
	})
}

// Delete removes the game from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// WithLock runs fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
