// Package ratelimit implements the per-client fixed-window limiter guarding
// the contact endpoint.
package ratelimit

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Defaults for the contact endpoint: 5 submissions per rolling hour per
// client identifier. The limiter is per-process; behind multiple instances
// it degrades to a per-instance limit, which is an accepted deployment
// caveat rather than something to paper over here.
const (
	DefaultMax    = 5
	DefaultWindow = time.Hour
)

// ClientIDKey is the gin context key under which the middleware stores the
// derived client identifier for downstream logging.
const ClientIDKey = "client_id"

// record tracks one client identifier's window.
type record struct {
	count   int
	resetAt time.Time
}

// Limiter counts submissions per client identifier over a fixed window.
type Limiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	records map[string]*record
}

// New creates a limiter and starts a janitor goroutine that evicts expired
// records so the map stays bounded by active clients.
func New(max int, window time.Duration) *Limiter {
	l := &Limiter{
		max:     max,
		window:  window,
		now:     time.Now,
		records: make(map[string]*record),
	}
	go l.janitor()
	return l
}

// Allow records one submission attempt for clientID and reports whether it
// is within the limit. The read-modify-write is atomic so near-simultaneous
// requests from the same client cannot both sneak under the cap.
func (l *Limiter) Allow(clientID string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[clientID]
	if !ok || now.After(rec.resetAt) {
		l.records[clientID] = &record{count: 1, resetAt: now.Add(l.window)}
		return true
	}
	if rec.count >= l.max {
		return false
	}
	rec.count++
	return true
}

// janitor periodically drops records whose window has passed. Eviction never
// changes limiting decisions: an expired record would be reset on the next
// Allow anyway.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for range ticker.C {
		now := l.now()
		l.mu.Lock()
		for id, rec := range l.records {
			if now.After(rec.resetAt) {
				delete(l.records, id)
			}
		}
		l.mu.Unlock()
	}
}

// Middleware rejects over-limit clients with 429 before the handler runs and
// stashes the client identifier in the gin context.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ClientID(c.Request)
		if !l.Allow(id) {
			slog.Warn("rate limit exceeded", "client", id)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Trop de demandes. Veuillez réessayer plus tard.",
			})
			return
		}
		c.Set(ClientIDKey, id)
		c.Next()
	}
}

// ClientID derives the rate-limit key for a request: first entry of
// X-Forwarded-For, else the peer address, else "unknown".
func ClientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
