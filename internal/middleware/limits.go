package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultMaxBodySize caps request bodies at 1MB. Cart replacements and
	// admin content updates are the largest payloads the API accepts and
	// they stay well under this.
	DefaultMaxBodySize int64 = 1 << 20

	// DefaultTimeout bounds request handling, including the outbound
	// Stripe and Gemini calls some handlers make.
	DefaultTimeout = 30 * time.Second
)

// MaxBodySize rejects request bodies larger than maxBytes with a 413.
// Bodies under the limit are wrapped with http.MaxBytesReader so oversized
// chunked uploads fail mid-read as well.
func MaxBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				respondTooLarge(w, r, "Request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// Timeout cancels the request context after d and answers 503 if the
// handler has not started writing. A handler that already wrote headers is
// left alone; the client sees a truncated response.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			done := make(chan struct{})
			dw := &deadlineWriter{ResponseWriter: w, done: done}

			go func() {
				defer close(done)
				next.ServeHTTP(dw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				dw.mu.Lock()
				defer dw.mu.Unlock()
				if !dw.wroteHeader {
					dw.wroteHeader = true
					w.WriteHeader(http.StatusServiceUnavailable)
					w.Write([]byte("request timed out"))
				}
			}
		})
	}
}

// deadlineWriter suppresses handler writes that race the timeout response.
type deadlineWriter struct {
	http.ResponseWriter
	mu          sync.Mutex
	wroteHeader bool
	done        chan struct{}
}

func (dw *deadlineWriter) WriteHeader(code int) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.wroteHeader || dw.finished() {
		return
	}
	dw.wroteHeader = true
	dw.ResponseWriter.WriteHeader(code)
}

func (dw *deadlineWriter) Write(b []byte) (int, error) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.finished() {
		return 0, context.DeadlineExceeded
	}
	if !dw.wroteHeader {
		dw.wroteHeader = true
		dw.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return dw.ResponseWriter.Write(b)
}

func (dw *deadlineWriter) finished() bool {
	select {
	case <-dw.done:
		return true
	default:
		return false
	}
}
