package agenda

import "time"

// Config holds the configuration for an Agenda instance.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// CORSOrigins lists the origins allowed to call the JSON API from a browser.
	// A single "*" allows any origin.
	CORSOrigins []string

	// RateLimit is the number of API requests per second allowed per client.
	// Set to 0 to disable rate limiting.
	RateLimit int

	// TrustForwardedFor keys rate limiting on X-Forwarded-For instead of the
	// connection address. Enable it only behind a proxy that overwrites the header.
	TrustForwardedFor bool

	// ShutdownTimeout is the maximum time to wait for in-flight requests on shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":5000",
		CORSOrigins:     []string{"*"},
		RateLimit:       0,
		ShutdownTimeout: 10 * time.Second,
	}
}
