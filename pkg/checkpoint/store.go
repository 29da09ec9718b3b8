// Package checkpoint persists pagination cursors in Redis so that long
// listings can be resumed across process restarts.
//
// A checkpoint is a named cursor. The consumer saves the cursor of each
// page it has fully processed; after a restart it loads the checkpoint
// and resumes with GetPageAt instead of re-listing from the start.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for checkpoint operations.
var (
	checkpointSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_checkpoint_saves_total",
		Help: "Total cursor checkpoints saved",
	})

	checkpointLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_checkpoint_loads_total",
		Help: "Total cursor checkpoints loaded",
	})

	checkpointMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_checkpoint_misses_total",
		Help: "Total checkpoint loads that found no cursor",
	})
)

// ErrNotFound indicates no cursor is stored under the requested name.
var ErrNotFound = errors.New("checkpoint: cursor not found")

// Store persists named cursors in Redis.
type Store struct {
	redis  *redis.Client
	prefix string
	ttl    time.Duration
	logger zerolog.Logger
}

// Config holds the store configuration.
type Config struct {
	// Redis client for checkpoint state.
	Redis *redis.Client

	// Prefix namespaces checkpoint keys (default "ledger:cursor:").
	Prefix string

	// TTL expires stale checkpoints. Zero means no expiry. Cursors
	// reference server-side result sets, so letting abandoned ones
	// expire is usually what you want.
	TTL time.Duration
}

// NewStore creates a checkpoint store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "ledger:cursor:"
	}

	return &Store{
		redis:  cfg.Redis,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		logger: log.With().Str("component", "checkpoint").Logger(),
	}, nil
}

// Save stores cursor under name, overwriting any previous checkpoint.
func (s *Store) Save(ctx context.Context, name, cursor string) error {
	if name == "" {
		return fmt.Errorf("checkpoint name is required")
	}

	if err := s.redis.Set(ctx, s.prefix+name, cursor, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	checkpointSaves.Inc()
	s.logger.Debug().
		Str("name", name).
		Msg("Saved cursor checkpoint")

	return nil
}

// Load returns the cursor stored under name.
// Returns ErrNotFound if no checkpoint exists.
func (s *Store) Load(ctx context.Context, name string) (string, error) {
	cursor, err := s.redis.Get(ctx, s.prefix+name).Result()
	if err != nil {
		if err == redis.Nil {
			checkpointMisses.Inc()
			return "", ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}

	checkpointLoads.Inc()
	return cursor, nil
}

// Delete removes the checkpoint stored under name. Deleting a missing
// checkpoint is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.redis.Del(ctx, s.prefix+name).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
