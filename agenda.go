package agenda

import (
	"context"
	"fmt"
	"log/slog"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/observability"
	"github.com/xraph/agenda/store"
)

// wireServices initializes the internal services after options have been applied.
func (a *Agenda) wireServices() {
	if a.tracer == nil {
		a.tracer = observability.NewTracer()
	}

	a.events = event.NewService(a.store, a.logger,
		event.WithTracer(a.tracer),
		event.WithMetrics(a.metrics),
	)
}

// Events returns the event service.
func (a *Agenda) Events() *event.Service { return a.events }

// Store returns the underlying composite store.
func (a *Agenda) Store() store.Store { return a.store }

// Config returns the active configuration.
func (a *Agenda) Config() Config { return a.config }

// MetricFactory returns the factory passed to WithMetrics, or nil.
func (a *Agenda) MetricFactory() gu.MetricFactory { return a.factory }

// Logger returns the configured logger.
func (a *Agenda) Logger() *slog.Logger { return a.logger }

// Migrate prepares the backing store (tables, indexes).
func (a *Agenda) Migrate(ctx context.Context) error {
	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrMigrationFailed, err)
	}
	return nil
}

// Ping checks that the backing store is reachable.
func (a *Agenda) Ping(ctx context.Context) error {
	return a.store.Ping(ctx)
}

// Close releases the backing store.
func (a *Agenda) Close() error {
	return a.store.Close()
}
