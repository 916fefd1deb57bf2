package extension

import (
	"log/slog"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/store"
)

// ExtOption configures the Agenda Forge extension.
type ExtOption func(*Extension)

// WithStore sets the persistence backend via an agenda option.
func WithStore(s store.Store) ExtOption {
	return func(e *Extension) {
		e.opts = append(e.opts, agenda.WithStore(s))
	}
}

// WithLogger sets the logger used by the agenda instance and the HTTP handler.
func WithLogger(logger *slog.Logger) ExtOption {
	return func(e *Extension) {
		e.logger = logger
	}
}

// WithMetrics enables event metrics on the given factory, typically the
// Forge application's metrics. GET /metrics is served when the factory can
// list its metrics.
func WithMetrics(factory gu.MetricFactory) ExtOption {
	return func(e *Extension) {
		e.opts = append(e.opts, agenda.WithMetrics(factory))
	}
}

// WithPrefix sets the URL prefix for all agenda routes.
func WithPrefix(prefix string) ExtOption {
	return func(e *Extension) {
		e.config.BasePath = prefix
	}
}

// WithConfig sets the extension configuration directly.
func WithConfig(cfg Config) ExtOption {
	return func(e *Extension) {
		e.config = cfg
	}
}

// WithAgendaOption appends a raw agenda.Option to the extension.
func WithAgendaOption(opt agenda.Option) ExtOption {
	return func(e *Extension) {
		e.opts = append(e.opts, opt)
	}
}

// WithDisableRoutes disables automatic route registration.
func WithDisableRoutes() ExtOption {
	return func(e *Extension) {
		e.config.DisableRoutes = true
	}
}

// WithDisableMigrations disables automatic store migration on Init.
func WithDisableMigrations() ExtOption {
	return func(e *Extension) {
		e.config.DisableMigrate = true
	}
}
