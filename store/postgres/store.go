// Package postgres implements store.Store on PostgreSQL through grove's pgdriver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/storeerr"
	agendastore "github.com/xraph/agenda/store"
)

const backend = "postgres"

// compile-time interface check
var _ agendastore.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("agenda/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("agenda/postgres: migration failed: %w", err)
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
	_, err := s.pg.NewInsert(m).Exec(ctx)
	return storeerr.Wrap(backend, "create event", err)
}

// ReplaceEvent updates the row and reads it back with RETURNING, so the
// result is the row this statement wrote.
func (s *Store) ReplaceEvent(ctx context.Context, evt *event.Event) error {
	m := new(eventModel)
	err := s.pg.NewUpdate((*eventModel)(nil)).
		Set("name = $1", evt.Name).
		Set("date = $2", evt.Date.Time()).
		Set("location = $3", evt.Location).
		Set("description = $4", evt.Description).
		Set("people = $5", evt.People).
		Set("updated_at = $6", time.Now().UTC()).
		Where("id = $7", evt.ID).
		Returning(returnedColumns...).
		Scan(ctx, &m.ID, &m.Name, &m.Date, &m.Location, &m.Description, &m.People, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return agenda.ErrEventNotFound
		}
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
	res, err := s.pg.NewDelete((*eventModel)(nil)).
		Where("id = $1", evtID).
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
	err := s.pg.NewSelect(m).
		Where("id = $1", evtID).
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
	err := s.pg.NewSelect(&models).
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
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}
