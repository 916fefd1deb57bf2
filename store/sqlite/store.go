// Package sqlite implements store.Store on SQLite through grove's sqlitedriver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/storeerr"
	agendastore "github.com/xraph/agenda/store"
)

const backend = "sqlite"

// compile-time interface check
var _ agendastore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("agenda/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("agenda/sqlite: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return storeerr.Wrap(backend, "ping", s.db.Ping(ctx))
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Event Store ====================

func (s *Store) CreateEvent(ctx context.Context, evt *event.Event) error {
	m := toEventModel(evt)
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return storeerr.Wrap(backend, "create event", err)
}

// ReplaceEvent updates and re-reads the row in one transaction, so a
// concurrent delete cannot land between the two statements.
func (s *Store) ReplaceEvent(ctx context.Context, evt *event.Event) error {
	tx, err := s.sdb.BeginTxQuery(ctx, nil)
	if err != nil {
		return storeerr.Wrap(backend, "replace event", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.NewUpdate((*eventModel)(nil)).
		Set("name = ?", evt.Name).
		Set("date = ?", evt.Date.String()).
		Set("location = ?", evt.Location).
		Set("description = ?", evt.Description).
		Set("people = ?", evt.People).
		Set("updated_at = ?", formatTime(time.Now())).
		Where("id = ?", evt.ID).
		Exec(ctx)
	if err != nil {
		return storeerr.Wrap(backend, "replace event", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return storeerr.Wrap(backend, "replace event", err)
	}
	if rows == 0 {
		return agenda.ErrEventNotFound
	}

	m := new(eventModel)
	if err := tx.NewSelect(m).Where("id = ?", evt.ID).Scan(ctx); err != nil {
		return storeerr.Wrap(backend, "replace event", err)
	}
	if err := tx.Commit(); err != nil {
		return storeerr.Wrap(backend, "replace event", err)
	}

	stored, err := fromEventModel(m)
	if err != nil {
		return err
	}
	*evt = *stored
	return nil
}

func (s *Store) DeleteEvent(ctx context.Context, evtID id.ID) error {
	res, err := s.sdb.NewDelete((*eventModel)(nil)).
		Where("id = ?", evtID).
		Exec(ctx)
	if err != nil {
		return storeerr.Wrap(backend, "delete event", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return storeerr.Wrap(backend, "delete event", err)
	}
	if rows == 0 {
		return agenda.ErrEventNotFound
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, evtID id.ID) (*event.Event, error) {
	m := new(eventModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", evtID).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, agenda.ErrEventNotFound
		}
		return nil, storeerr.Wrap(backend, "get event", err)
	}
	return fromEventModel(m)
}

func (s *Store) ListEvents(ctx context.Context) ([]*event.Event, error) {
	var models []eventModel
	err := s.sdb.NewSelect(&models).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storeerr.Wrap(backend, "list events", err)
	}

	result := make([]*event.Event, len(models))
	for i := range models {
		evt, err := fromEventModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = evt
	}
	return result, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
