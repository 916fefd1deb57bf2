package extension

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/api"
)

// ErrNotInitialized is returned when the extension is used before Init.
var ErrNotInitialized = errors.New("agenda/extension: not initialized")

// Extension is the Forge extension for Agenda.
type Extension struct {
	config Config
	opts   []agenda.Option
	agenda *agenda.Agenda
	logger *slog.Logger
}

// New creates a new Agenda Forge extension.
func New(opts ...ExtOption) *Extension {
	e := &Extension{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the extension name.
func (e *Extension) Name() string { return "agenda" }

// Init builds the Agenda instance and, unless disabled, migrates the store.
func (e *Extension) Init(ctx context.Context) error {
	opts := []agenda.Option{
		agenda.WithConfig(e.config.Config),
		agenda.WithLogger(e.logger),
	}
	opts = append(opts, e.config.ToAgendaOptions()...)
	opts = append(opts, e.opts...)

	a, err := agenda.New(opts...)
	if err != nil {
		return fmt.Errorf("agenda/extension: init: %w", err)
	}

	if !e.config.DisableMigrate {
		if err := a.Migrate(ctx); err != nil {
			return fmt.Errorf("agenda/extension: init: %w", err)
		}
	}

	e.agenda = a
	e.logger.Info("agenda extension initialized", "prefix", e.Prefix())
	return nil
}

// Agenda returns the underlying instance, or nil before Init.
func (e *Extension) Agenda() *agenda.Agenda { return e.agenda }

// Handler returns the net/http handler serving the JSON API, the calendar
// feed and the form UI. Mount it under Prefix with http.StripPrefix and link
// the page as Prefix + "/": its script calls the API relative to the page.
func (e *Extension) Handler() (http.Handler, error) {
	if e.agenda == nil {
		return nil, ErrNotInitialized
	}
	return api.NewHandler(e.agenda.Events(), e.agenda, api.ConfigFor(e.agenda), e.logger), nil
}

// RegisterRoutes mounts the event routes on the Forge router under Prefix.
// It is a no-op when routes are disabled.
func (e *Extension) RegisterRoutes(router forge.Router, log forge.Logger) error {
	if e.config.DisableRoutes {
		return nil
	}
	if e.agenda == nil {
		return ErrNotInitialized
	}
	api.NewForgeAPI(e.agenda.Events(), log).RegisterRoutes(router.Group(e.Prefix()))
	return nil
}

// Health reports whether the store is reachable.
func (e *Extension) Health(ctx context.Context) error {
	if e.agenda == nil {
		return ErrNotInitialized
	}
	return e.agenda.Ping(ctx)
}

// Stop closes the store.
func (e *Extension) Stop(_ context.Context) error {
	if e.agenda == nil {
		return nil
	}
	return e.agenda.Close()
}

// Prefix returns the configured URL prefix.
func (e *Extension) Prefix() string { return e.config.BasePath }
