package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aretw0/guessr/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// noExpiry is the index score of games saved without a TTL (2100-01-01).
const noExpiry = 4102444800

// Store implements ports.GameStore on Redis, so every replica behind a load
// balancer sees the same games. Pair it with a Locker on the same client.
//
// Each game is a JSON value under <prefix>game:<id>; the sorted set
// <prefix>games indexes them by expiry for List.
type Store struct {
	client backend.UniversalClient
	prefix string
	ttl    time.Duration
}

// StoreOption configures the Store.
type StoreOption func(*Store)

// WithTTL expires games that have not been touched for ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithPrefix sets the key namespace. It defaults to DefaultPrefix.
func WithPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewStore creates a game store over an existing client.
func NewStore(client backend.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(sessionID string) string {
	return s.prefix + "game:" + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "games"
}

// Save writes the game and refreshes its expiry.
func (s *Store) Save(ctx context.Context, sessionID string, game *domain.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	score := float64(noExpiry)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game to redis: %w", err)
	}
	return nil
}

// Load reads the game, or returns domain.ErrSessionNotFound once it is gone or expired.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Game, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game from redis: %w", err)
	}

	var game domain.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %q: %w", sessionID, err)
	}
	return &game, nil
}

// Delete removes the game and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete game from redis: %w", err)
	}
	return nil
}

// List prunes expired index entries and returns the remaining session IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+now).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired games: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	sort.Strings(sessions)
	return sessions, nil
}
