package extension

import (
	"github.com/xraph/agenda"
)

// Config holds configuration for the Agenda Forge extension.
// Fields can be set programmatically via ExtOption functions or loaded from
// YAML configuration files (under "extensions.agenda" or "agenda" keys).
type Config struct {
	// Config embeds the core agenda configuration.
	agenda.Config `json:",inline" yaml:",inline" mapstructure:",squash"`

	// BasePath is the URL prefix for all agenda routes (default: "/agenda").
	BasePath string `json:"base_path" yaml:"base_path" mapstructure:"base_path"`

	// DisableRoutes disables automatic route registration with the Forge router.
	DisableRoutes bool `json:"disable_routes" yaml:"disable_routes" mapstructure:"disable_routes"`

	// DisableMigrate disables automatic database migration on Init.
	DisableMigrate bool `json:"disable_migrate" yaml:"disable_migrate" mapstructure:"disable_migrate"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Config:   agenda.DefaultConfig(),
		BasePath: "/agenda",
	}
}

// ToAgendaOptions converts the embedded Config into agenda.Option values.
func (c Config) ToAgendaOptions() []agenda.Option {
	var opts []agenda.Option

	if len(c.CORSOrigins) > 0 {
		opts = append(opts, agenda.WithCORSOrigins(c.CORSOrigins...))
	}
	if c.RateLimit > 0 {
		opts = append(opts, agenda.WithRateLimit(c.RateLimit))
	}
	if c.TrustForwardedFor {
		opts = append(opts, agenda.WithTrustForwardedFor(true))
	}
	if c.ShutdownTimeout > 0 {
		opts = append(opts, agenda.WithShutdownTimeout(c.ShutdownTimeout))
	}

	return opts
}
