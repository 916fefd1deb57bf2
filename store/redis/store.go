// Package redis implements store.Store on Redis through grove kv, with a
// sorted-set index for creation order.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"

	"github.com/xraph/agenda/internal/storeerr"
	agendastore "github.com/xraph/agenda/store"
)

const backend = "redis"

// compile-time interface check
var _ agendastore.Store = (*Store)(nil)

// Store implements store.Store using Redis via Grove KV. Entity writes go
// through MULTI/EXEC on the unwrapped client so the record and its index
// entry change together.
type Store struct {
	kv  *kv.Store
	rdb goredis.UniversalClient
}

// New creates a new Redis store backed by Grove KV.
func New(store *kv.Store) *Store {
	return &Store{
		kv:  store,
		rdb: redisdriver.UnwrapClient(store),
	}
}

// Migrate is a no-op for Redis (no schema migrations needed).
func (s *Store) Migrate(_ context.Context) error {
	return nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return storeerr.Wrap(backend, "ping", s.kv.Ping(ctx))
}

// Close closes the KV store.
func (s *Store) Close() error {
	return s.kv.Close()
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// scoreFromTime converts a time.Time to a sorted set score (unix milliseconds).
// Members with equal scores are ordered by ID, which keeps ties stable.
func scoreFromTime(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// isRedisNil checks if an error is a Redis nil (key not found).
func isRedisNil(err error) bool {
	return errors.Is(err, goredis.Nil)
}

// encode marshals an entity for storage.
func encode(value any) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("agenda/redis: marshal entity: %w", err)
	}
	return raw, nil
}
