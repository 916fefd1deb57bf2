// Command agenda serves the event-management API and form UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/api"
	"github.com/xraph/agenda/store"
	"github.com/xraph/agenda/store/backend"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "agenda",
		Usage: "Manage events over a JSON API and a form UI.",
		Flags: serveFlags(),
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		Action: serve,
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "store",
			Value:   string(backend.KindMongo),
			Usage:   "store backend: mongo, postgres, sqlite, redis or memory",
			EnvVars: []string{"AGENDA_STORE"},
		},
		&cli.StringFlag{
			Name:    "dsn",
			Usage:   "store connection string (defaults depend on --store)",
			EnvVars: []string{"AGENDA_DSN"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "debug, info, warn or error",
			EnvVars: []string{"LOG_LEVEL"},
		},
	}
}

func serveFlags() []cli.Flag {
	def := agenda.DefaultConfig()
	return append(storeFlags(),
		&cli.StringFlag{
			Name:    "addr",
			Value:   def.Addr,
			Usage:   "HTTP listen address",
			EnvVars: []string{"AGENDA_ADDR"},
		},
		&cli.StringSliceFlag{
			Name:    "cors-origins",
			Value:   cli.NewStringSlice(def.CORSOrigins...),
			Usage:   "origins allowed to call the API from a browser",
			EnvVars: []string{"AGENDA_CORS_ORIGINS"},
		},
		&cli.IntFlag{
			Name:    "rate-limit",
			Value:   def.RateLimit,
			Usage:   "requests per second per client, 0 disables",
			EnvVars: []string{"AGENDA_RATE_LIMIT"},
		},
		&cli.BoolFlag{
			Name:    "trust-forwarded-for",
			Usage:   "rate limit on X-Forwarded-For (only behind a trusted proxy)",
			EnvVars: []string{"AGENDA_TRUST_FORWARDED_FOR"},
		},
		&cli.BoolFlag{
			Name:    "metrics",
			Usage:   "collect event metrics and serve them on GET /metrics",
			EnvVars: []string{"AGENDA_METRICS"},
		},
		&cli.DurationFlag{
			Name:    "shutdown-timeout",
			Value:   def.ShutdownTimeout,
			Usage:   "time allowed for in-flight requests on shutdown",
			EnvVars: []string{"AGENDA_SHUTDOWN_TIMEOUT"},
		},
	)
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP server (default).",
		Flags:  serveFlags(),
		Action: serve,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create the tables and indexes the store needs, then exit.",
		Flags: storeFlags(),
		Action: func(c *cli.Context) error {
			logger := setupLogger(c.String("log-level"))

			s, err := openStore(c, logger)
			if err != nil {
				return err
			}
			defer s.Close() //nolint:errcheck // exiting

			if err := s.Migrate(c.Context); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("Store migrated.", "store", c.String("store"))
			return nil
		},
	}
}

func serve(c *cli.Context) error {
	logger := setupLogger(c.String("log-level"))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore(c, logger)
	if err != nil {
		return err
	}

	cfg := agenda.DefaultConfig()
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("cors-origins") {
		cfg.CORSOrigins = splitOrigins(c.StringSlice("cors-origins"))
	}
	if c.IsSet("rate-limit") {
		cfg.RateLimit = c.Int("rate-limit")
	}
	if c.IsSet("shutdown-timeout") {
		cfg.ShutdownTimeout = c.Duration("shutdown-timeout")
	}
	cfg.TrustForwardedFor = c.Bool("trust-forwarded-for")

	opts := []agenda.Option{
		agenda.WithStore(s),
		agenda.WithLogger(logger),
		agenda.WithConfig(cfg),
	}
	if c.Bool("metrics") {
		opts = append(opts, agenda.WithMetrics(gu.NewMetricsCollector("agenda")))
	}

	a, err := agenda.New(opts...)
	if err != nil {
		s.Close() //nolint:errcheck // already failing
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()

	if err := a.Migrate(ctx); err != nil {
		return err
	}

	handler := api.NewHandler(a.Events(), a, api.ConfigFor(a), logger)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening.", "addr", cfg.Addr, "store", c.String("store"))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down.", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(c *cli.Context, logger *slog.Logger) (store.Store, error) {
	kind, err := backend.ParseKind(c.String("store"))
	if err != nil {
		return nil, err
	}

	dsn := c.String("dsn")
	if dsn == "" {
		dsn = backend.DefaultDSN(kind)
	}
	logger.Debug("Opening store.", "store", kind)

	s, err := backend.Open(c.Context, kind, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", kind, err)
	}
	return s, nil
}

// splitOrigins accepts both repeated flags and comma-separated env values.
func splitOrigins(values []string) []string {
	var out []string
	for _, v := range values {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
