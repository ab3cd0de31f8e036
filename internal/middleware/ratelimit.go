package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiterConfig configures the per-client token bucket limiter.
type RateLimiterConfig struct {
	// RequestsPerSecond is the sustained refill rate per client
	RequestsPerSecond float64

	// BurstSize is how many requests a client may spend at once
	BurstSize int

	// CleanupInterval is how often idle client buckets are dropped
	CleanupInterval time.Duration

	// KeyFunc derives the limiter key from the request.
	// Defaults to the client IP.
	KeyFunc func(r *http.Request) string
}

// DefaultRateLimiterConfig covers normal browsing traffic.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   time.Minute,
	}
}

// StrictRateLimiterConfig is for abuse-prone endpoints: login, register,
// and the contact form.
func StrictRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 1,
		BurstSize:         5,
		CleanupInterval:   time.Minute,
	}
}

// RateLimiter holds one token bucket per client key, in memory. Limits are
// per process; the enhancement endpoint has its own shared limiter when
// Redis is configured.
type RateLimiter struct {
	config  RateLimiterConfig
	mu      sync.Mutex
	clients map[string]*clientBucket
	stop    chan struct{}
}

type clientBucket struct {
	tokens float64
	seen   time.Time
}

// NewRateLimiter creates a limiter and starts its cleanup loop.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = GetClientIP
	}
	rl := &RateLimiter{
		config:  config,
		clients: make(map[string]*clientBucket),
		stop:    make(chan struct{}),
	}
	go rl.evictIdle()
	return rl
}

// Allow spends one token for key, reporting whether the request may
// proceed.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.clients[key]
	if !ok {
		b = &clientBucket{tokens: float64(rl.config.BurstSize), seen: now}
		rl.clients[key] = b
	}

	b.tokens += now.Sub(b.seen).Seconds() * rl.config.RequestsPerSecond
	if burst := float64(rl.config.BurstSize); b.tokens > burst {
		b.tokens = burst
	}
	b.seen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.config.CleanupInterval)
			rl.mu.Lock()
			for key, b := range rl.clients {
				if b.seen.Before(cutoff) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the cleanup loop.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Middleware rejects over-limit requests with a 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(rl.config.KeyFunc(r)) {
			w.Header().Set("Retry-After", "1")
			respondTooManyRequests(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit is a convenience wrapper for attaching a limiter to individual
// routes.
func RateLimit(config RateLimiterConfig) func(http.Handler) http.Handler {
	return NewRateLimiter(config).Middleware
}
