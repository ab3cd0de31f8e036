// Package ratelimit provides keyed fixed-window rate limiting with
// in-memory and Redis backends.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter answers whether a key may perform another request in the
// current window.
type Limiter interface {
	// Allow consumes one request for key. Returns false when the key
	// has exhausted its window.
	Allow(ctx context.Context, key string) (bool, error)
}

// window tracks request count for one key in the current window.
type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow is an in-memory fixed-window limiter.
type FixedWindow struct {
	limit    int
	duration time.Duration

	mu      sync.Mutex
	windows map[string]*window
}

// NewFixedWindow creates an in-memory limiter allowing limit requests
// per duration for each key.
func NewFixedWindow(limit int, duration time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:    limit,
		duration: duration,
		windows:  make(map[string]*window),
	}
}

// Allow consumes one request for key.
func (f *FixedWindow) Allow(_ context.Context, key string) (bool, error) {
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	w, ok := f.windows[key]
	if !ok || now.After(w.resetAt) {
		// Opportunistically drop other expired windows
		for k, other := range f.windows {
			if now.After(other.resetAt) {
				delete(f.windows, k)
			}
		}
		f.windows[key] = &window{count: 1, resetAt: now.Add(f.duration)}
		return true, nil
	}

	if w.count >= f.limit {
		return false, nil
	}
	w.count++
	return true, nil
}

var _ Limiter = (*FixedWindow)(nil)
