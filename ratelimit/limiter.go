// Package ratelimit provides per-client token bucket rate limiting for the
// HTTP API.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// maxBuckets bounds the number of tracked clients before idle buckets are pruned.
const maxBuckets = 10000

// Limiter implements token bucket rate limiting per client key.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens    float64
	lastFill  time.Time
	rateLimit float64 // tokens per second
}

// New creates a new rate limiter.
func New() *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
	}
}

// Allow checks whether the client identified by key may proceed.
// A rateLimit of 0 means unlimited (always returns true).
func (l *Limiter) Allow(key string, rateLimit int) bool {
	if rateLimit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.getOrCreateBucket(key, float64(rateLimit))
	b.refill()

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Reset clears the rate limit state for a client.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, key)
}

// Prune drops buckets untouched for longer than idle and returns how many were removed.
func (l *Limiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pruneLocked(idle)
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Middleware returns HTTP middleware that admits at most rateLimit requests per
// second per client, as identified by key. Rejected requests are passed to reject.
// A rateLimit of 0 disables the check.
func (l *Limiter) Middleware(rateLimit int, key func(*http.Request) string, reject http.Handler) func(http.Handler) http.Handler {
	if key == nil {
		key = ClientKey
	}
	return func(next http.Handler) http.Handler {
		if rateLimit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(key(r), rateLimit) {
				w.Header().Set("Retry-After", "1")
				reject.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey identifies the caller by the host part of the connection's remote
// address. Request headers are ignored, so a client cannot pick its own bucket.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ForwardedClientKey identifies the caller by the first X-Forwarded-For address,
// falling back to ClientKey. Use it only behind a proxy that overwrites the header.
func ForwardedClientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return ClientKey(r)
}

func (l *Limiter) getOrCreateBucket(key string, rateLimit float64) *bucket {
	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxBuckets {
			l.pruneLocked(time.Minute)
		}
		b = &bucket{
			tokens:    rateLimit, // start full
			lastFill:  time.Now(),
			rateLimit: rateLimit,
		}
		l.buckets[key] = b
	}
	return b
}

func (l *Limiter) pruneLocked(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	removed := 0
	for key, b := range l.buckets {
		if b.lastFill.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

func (b *bucket) refill() {
	now := time.Now()
	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens += elapsed * b.rateLimit
	if b.tokens > b.rateLimit {
		b.tokens = b.rateLimit // cap at burst size = rate limit
	}
	b.lastFill = now
}
