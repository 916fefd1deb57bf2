package agenda

import (
	"log/slog"
	"time"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/observability"
	"github.com/xraph/agenda/store"
)

// Agenda is the root event-management service.
type Agenda struct {
	config  Config
	store   store.Store
	events  *event.Service
	metrics *observability.Metrics
	factory gu.MetricFactory
	tracer  *observability.Tracer
	logger  *slog.Logger
}

// Option configures an Agenda instance.
type Option func(*Agenda) error

// New creates a new Agenda with the given options.
func New(opts ...Option) (*Agenda, error) {
	a := &Agenda{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.store == nil {
		return nil, ErrNoStore
	}
	a.wireServices()
	return a, nil
}

// WithStore sets the persistence backend for the Agenda instance.
func WithStore(s store.Store) Option {
	return func(a *Agenda) error {
		a.store = s
		return nil
	}
}

// WithLogger sets the structured logger for the Agenda instance.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agenda) error {
		a.logger = logger
		return nil
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(a *Agenda) error {
		a.config = cfg
		return nil
	}
}

// WithMetrics enables event counters backed by the given metric factory.
func WithMetrics(factory gu.MetricFactory) Option {
	return func(a *Agenda) error {
		a.factory = factory
		a.metrics = observability.NewMetrics(factory)
		return nil
	}
}

// WithCORSOrigins sets the origins allowed to call the JSON API.
func WithCORSOrigins(origins ...string) Option {
	return func(a *Agenda) error {
		a.config.CORSOrigins = origins
		return nil
	}
}

// WithRateLimit sets the per-client request rate for the JSON API.
func WithRateLimit(perSecond int) Option {
	return func(a *Agenda) error {
		a.config.RateLimit = perSecond
		return nil
	}
}

// WithTrustForwardedFor makes rate limiting honour X-Forwarded-For.
func WithTrustForwardedFor(trust bool) Option {
	return func(a *Agenda) error {
		a.config.TrustForwardedFor = trust
		return nil
	}
}

// WithShutdownTimeout sets the maximum time to wait for in-flight requests on shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(a *Agenda) error {
		a.config.ShutdownTimeout = d
		return nil
	}
}
