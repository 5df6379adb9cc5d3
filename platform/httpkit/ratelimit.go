package httpkit

import (
	"net/http"
	"sync"
	"time"

	"servant_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// windowEntry tracks request counts for one key inside the current window.
type windowEntry struct {
	count   int
	resetAt time.Time
}

// WindowLimiter is a fixed-window request counter keyed by arbitrary strings
// (typically "<route>:<client-ip>"). It is process-local and memory-only:
// counters reset on restart and are not shared across instances, so it is a
// coarse abuse guard, not a security boundary.
type WindowLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

// NewWindowLimiter creates a limiter using the wall clock.
func NewWindowLimiter() *WindowLimiter {
	return NewWindowLimiterWithClock(time.Now)
}

// NewWindowLimiterWithClock creates a limiter with an injectable clock so
// tests can advance time.
func NewWindowLimiterWithClock(now func() time.Time) *WindowLimiter {
	return &WindowLimiter{
		entries: make(map[string]*windowEntry),
		now:     now,
	}
}

// Allow reports whether the call identified by key is within limit for the
// given window. The first call of a window (or any call after the previous
// window expired) resets the counter to 1 and is allowed. Within a window the
// counter caps at limit: the call that would exceed it is rejected without
// incrementing further.
func (w *WindowLimiter) Allow(key string, limit int, window time.Duration) bool {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	entry, ok := w.entries[key]
	if !ok || !now.Before(entry.resetAt) {
		w.entries[key] = &windowEntry{count: 1, resetAt: now.Add(window)}
		return true
	}

	if entry.count >= limit {
		return false
	}

	entry.count++
	return true
}

// Sweep removes entries whose window has expired. Run periodically from main.
func (w *WindowLimiter) Sweep() {
	now := w.now()

	w.mu.Lock()
	defer w.mu.Unlock()

	for key, entry := range w.entries {
		if !now.Before(entry.resetAt) {
			delete(w.entries, key)
		}
	}
}

// RunSweeper sweeps expired entries every interval until stop is closed.
func (w *WindowLimiter) RunSweeper(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// LimitRoute returns a middleware that throttles a route per client IP.
func (w *WindowLimiter) LimitRoute(route string, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := route + ":" + c.ClientIP()
		if !w.Allow(key, limit, window) {
			if log != nil {
				log.RateLimitExceeded(c.ClientIP(), c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}
