package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Agenda store.
// It can be registered with the grove extension for orchestrated migration
// management (locking, version tracking, rollback support).
var Migrations = migrate.NewGroup("agenda")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_agenda_events",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS agenda_events (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    date        DATE NOT NULL,
    location    TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    people      INTEGER NOT NULL DEFAULT 0 CHECK (people >= 0),
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_agenda_events_created ON agenda_events (created_at, id);
CREATE INDEX IF NOT EXISTS idx_agenda_events_date ON agenda_events (date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS agenda_events`)
				return err
			},
		},
	)
}
