package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds per-client token bucket settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	// IdleTTL evicts buckets for clients not seen within the window.
	IdleTTL time.Duration
	// SkipPrefixes lists path prefixes that are never limited.
	SkipPrefixes []string
}

func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 100,
		BurstSize:         200,
		IdleTTL:           10 * time.Minute,
		SkipPrefixes:      []string{"/health"},
	}
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// limiter keeps one bucket per client key.
type limiter struct {
	mu        sync.Mutex
	cfg       RateLimitConfig
	buckets   map[string]*tokenBucket
	lastSweep time.Time
	now       func() time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	return &limiter{
		cfg:     cfg,
		buckets: make(map[string]*tokenBucket),
		now:     time.Now,
	}
}

// allow takes a token for key. When none is left it returns the number of
// whole seconds until one is.
func (l *limiter) allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: float64(l.cfg.BurstSize), lastRefill: now}
		l.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * l.cfg.RequestsPerSecond
	if max := float64(l.cfg.BurstSize); b.tokens > max {
		b.tokens = max
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if l.cfg.RequestsPerSecond <= 0 {
		return false, 1
	}
	return false, int((1-b.tokens)/l.cfg.RequestsPerSecond) + 1
}

func (l *limiter) sweep(now time.Time) {
	if l.cfg.IdleTTL <= 0 || now.Sub(l.lastSweep) < l.cfg.IdleTTL {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.lastRefill) > l.cfg.IdleTTL {
			delete(l.buckets, k)
		}
	}
	l.lastSweep = now
}

// RateLimit limits each client IP with a token bucket.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	l := newLimiter(cfg)
	limit := strconv.FormatFloat(cfg.RequestsPerSecond, 'f', 0, 64)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, p := range cfg.SkipPrefixes {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", limit)
			ok, retryAfter := l.allow(c.RealIP())
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				h.Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
