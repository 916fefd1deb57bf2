// Package store defines the composite Store interface for all Agenda persistence.
//
// Each subsystem defines its own store interface, and the aggregate Store
// composes them with the lifecycle operations every backend provides.
package store

import (
	"context"

	"github.com/xraph/agenda/event"
)

// Store is the aggregate persistence interface.
type Store interface {
	event.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
