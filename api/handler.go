// Package api provides the HTTP API for Agenda event management.
//
// Handler serves the JSON API, the iCalendar feed and the form UI on a plain
// net/http mux. ForgeAPI registers the same event routes on a Forge router.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/observability"
	"github.com/xraph/agenda/ratelimit"
	"github.com/xraph/agenda/ui"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config tunes the HTTP handler.
type Config struct {
	// CORSOrigins lists the origins allowed to call the API from a browser.
	// A single "*" allows any origin; empty disables CORS headers.
	CORSOrigins []string

	// RateLimit is the number of requests per second allowed per client. 0 disables it.
	RateLimit int

	// TrustForwardedFor keys rate limiting on the first X-Forwarded-For address.
	// Enable it only behind a proxy that overwrites the header.
	TrustForwardedFor bool

	// Metrics, when set, is served as a JSON snapshot on GET /metrics.
	Metrics gu.MetricRepository
}

// ConfigFor builds the handler configuration of an Agenda instance. Metrics are
// served when its metric factory can also list what it created.
func ConfigFor(a *agenda.Agenda) Config {
	cfg := a.Config()
	c := Config{
		CORSOrigins:       cfg.CORSOrigins,
		RateLimit:         cfg.RateLimit,
		TrustForwardedFor: cfg.TrustForwardedFor,
	}
	if repo, ok := a.MetricFactory().(gu.MetricRepository); ok {
		c.Metrics = repo
	}
	return c
}

// Handler is the root HTTP handler for the Agenda API.
type Handler struct {
	events  *event.Service
	pinger  Pinger
	config  Config
	limiter *ratelimit.Limiter
	logger  *slog.Logger
	mux     *http.ServeMux
	handler http.Handler
}

// NewHandler creates a new API handler.
func NewHandler(events *event.Service, pinger Pinger, cfg Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		events:  events,
		pinger:  pinger,
		config:  cfg,
		limiter: ratelimit.New(),
		logger:  logger,
		mux:     http.NewServeMux(),
	}

	h.registerRoutes()
	h.handler = h.withMiddleware(h.mux)
	return h
}

func (h *Handler) registerRoutes() {
	// Events
	h.mux.HandleFunc("POST /events", h.createEvent)
	h.mux.HandleFunc("GET /events", h.listEvents)
	h.mux.HandleFunc("GET /events/{id}", h.getEvent)
	h.mux.HandleFunc("PUT /events/{id}", h.updateEvent)
	h.mux.HandleFunc("DELETE /events/{id}", h.deleteEvent)
	h.mux.HandleFunc("/events", methodNotAllowed("GET, POST"))
	h.mux.HandleFunc("/events/{id}", methodNotAllowed("GET, PUT, DELETE"))

	// Calendar feed
	h.mux.HandleFunc("GET /events.ics", h.calendarFeed)

	// Health
	h.mux.HandleFunc("GET /health", h.health)

	// Metrics
	if h.config.Metrics != nil {
		h.mux.HandleFunc("GET /metrics", h.metrics)
	}

	// UI
	h.mux.Handle("GET /{$}", ui.Handler())
	h.mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

func (h *Handler) withMiddleware(next http.Handler) http.Handler {
	key := ratelimit.ClientKey
	if h.config.TrustForwardedFor {
		key = ratelimit.ForwardedClientKey
	}
	limited := h.limiter.Middleware(h.config.RateLimit, key,
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusTooManyRequests, codeRateLimited, "rate limit exceeded")
		}),
	)(next)
	return h.panicRecovery(h.logging(h.cors(limited)))
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.Info("api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			h.logger.Warn("health check failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) metrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, observability.Snapshot(h.config.Metrics))
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// JSON helpers.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best effort
}
