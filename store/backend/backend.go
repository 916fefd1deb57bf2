// Package backend opens a store.Store by name and connection string.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/xraph/grove"
	"github.com/xraph/grove/driver"
	"github.com/xraph/grove/drivers/mongodriver"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/kv"
	"github.com/xraph/grove/kv/drivers/redisdriver"

	"github.com/xraph/agenda/internal/storeerr"
	"github.com/xraph/agenda/store"
	"github.com/xraph/agenda/store/memory"
	"github.com/xraph/agenda/store/mongo"
	"github.com/xraph/agenda/store/postgres"
	"github.com/xraph/agenda/store/redis"
	"github.com/xraph/agenda/store/sqlite"
)

// Kind names a store backend.
type Kind string

// Supported backends.
const (
	KindMongo    Kind = "mongo"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
	KindRedis    Kind = "redis"
	KindMemory   Kind = "memory"
)

// Kinds lists every supported backend.
var Kinds = []Kind{KindMongo, KindPostgres, KindSQLite, KindRedis, KindMemory}

// ParseKind resolves a backend name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("backend: unknown store %q (want one of %s)", s, joinKinds())
}

// DefaultDSN returns the connection string used when none is configured.
func DefaultDSN(k Kind) string {
	switch k {
	case KindMongo:
		return "mongodb://localhost:27017/events"
	case KindPostgres:
		return "postgres://localhost:5432/agenda?sslmode=disable"
	case KindSQLite:
		return "agenda.db"
	case KindRedis:
		return "redis://localhost:6379/0"
	default:
		return ""
	}
}

// Open connects to the backend k at dsn. An empty dsn selects DefaultDSN(k).
// The returned store is not migrated.
func Open(ctx context.Context, k Kind, dsn string) (store.Store, error) {
	if dsn == "" {
		dsn = DefaultDSN(k)
	}

	switch k {
	case KindMemory:
		return memory.New(), nil

	case KindMongo:
		drv := mongodriver.New()
		if err := drv.Open(ctx, dsn); err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		db, err := grove.Open(drv)
		if err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		return mongo.New(db), nil

	case KindPostgres:
		drv := pgdriver.New()
		if err := drv.Open(ctx, dsn); err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		db, err := grove.Open(drv)
		if err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		return postgres.New(db), nil

	case KindSQLite:
		drv := sqlitedriver.New()
		// SQLite has a single writer; one connection keeps transactions from
		// failing with SQLITE_BUSY.
		if err := drv.Open(ctx, dsn, driver.WithPoolSize(1)); err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		db, err := grove.Open(drv)
		if err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		return sqlite.New(db), nil

	case KindRedis:
		drv := redisdriver.New()
		if err := drv.Open(ctx, dsn); err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		kvs, err := kv.Open(drv)
		if err != nil {
			return nil, storeerr.Wrap(string(k), "open", err)
		}
		return redis.New(kvs), nil
	}

	return nil, fmt.Errorf("backend: unknown store %q", k)
}

func joinKinds() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
