package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/contextkeys"
	"github.com/Shalin-Shah-2002/Artium/pkg/httputil"
)

// RateLimitConfig defines token bucket parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the max requests allowed in the time window
	RequestsPerWindow int
	// WindowDuration is the time window for rate limiting
	WindowDuration time.Duration
	// BurstSize allows temporary bursts above the rate
	BurstSize int
}

// GenerationRateLimitConfig returns the limits applied to the generation
// endpoints, which fan out to a paid model API.
func GenerationRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerWindow: 10,
		WindowDuration:    time.Minute,
		BurstSize:         3,
	}
}

// RateLimiter implements per-caller rate limiting using a token bucket.
// Buckets are in-memory; a multi-instance deployment needs a shared
// store instead.
type RateLimiter struct {
	config  *RateLimitConfig
	buckets map[string]*bucket
	mu      sync.Mutex
	now     func() time.Time
}

type bucket struct {
	tokens     float64
	lastUpdate time.Time
}

// NewRateLimiter creates a rate limiter with the given configuration.
func NewRateLimiter(config *RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow reports whether the caller identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{
			tokens:     float64(l.config.BurstSize),
			lastUpdate: now,
		}
		l.buckets[key] = b
	}

	refillRate := float64(l.config.RequestsPerWindow) / l.config.WindowDuration.Seconds()
	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.tokens += elapsed * refillRate
	if max := float64(l.config.BurstSize); b.tokens > max {
		b.tokens = max
	}
	b.lastUpdate = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Cleanup removes buckets idle for more than twice the window; an idle
// bucket is fully refilled, so dropping it loses no state.
func (l *RateLimiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, b := range l.buckets {
		if now.Sub(b.lastUpdate) > l.config.WindowDuration*2 {
			delete(l.buckets, key)
		}
	}
}

// StartCleanup starts a background goroutine that evicts stale buckets
// until ctx is done. Without it the bucket map grows with every distinct
// caller key.
func (l *RateLimiter) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(l.config.WindowDuration)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Middleware enforces the limit per user id, falling back to the remote
// address for unauthenticated requests.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := contextkeys.GetUserID(r.Context())
		if key == "" {
			key = remoteHost(r)
		}
		if !l.Allow(key) {
			httputil.WriteTooManyRequests(w, "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
