package ratelimit

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
)

type Config struct {
	Window      time.Duration
	MaxRequests int
}

// Limiter is a per-process sliding-window counter keyed by client IP.
// It is not durable and not shared across instances.
type Limiter struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	clock     clockwork.Clock
	hits      map[string][]time.Time
	lastSweep time.Time
}

func NewLimiter(cfg Config, clock clockwork.Clock) *Limiter {
	return &Limiter{
		window:    cfg.Window,
		max:       cfg.MaxRequests,
		clock:     clock,
		hits:      make(map[string][]time.Time),
		lastSweep: clock.Now(),
	}
}

// Check records one request attempt for the key and reports whether it
// is allowed plus how many requests remain in the current window.
func (l *Limiter) Check(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	cutoff := now.Add(-l.window)

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false, 0
	}

	recent = append(recent, now)
	l.hits[key] = recent
	return true, l.max - len(recent)
}

// sweep drops keys whose newest hit fell out of the window so idle
// clients do not accumulate in the map. Caller holds the lock.
func (l *Limiter) sweep(cutoff time.Time) {
	for key, stamps := range l.hits {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.hits, key)
		}
	}
}

// New rejects requests over the limit before the resolution pipeline
// runs. Operational endpoints are exempt.
func New(limiter *Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/healthcheck" ||
			c.Path() == "/metrics" ||
			c.Path() == "/monitor" {
			return c.Next()
		}

		allowed, remaining := limiter.Check(c.IP())
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if !allowed {
			return c.SendStatus(fiber.StatusTooManyRequests)
		}

		return c.Next()
	}
}
