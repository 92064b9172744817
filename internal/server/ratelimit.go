package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/router"
)

type ipBucket struct {
	tokens float64
	last   time.Time
}

// sweepInterval is how often allow drops buckets that have refilled.
const sweepInterval = time.Minute

// limiter is a per-IP token bucket refilled at perMinute/60 tokens a second.
// A bucket back at full capacity behaves like a missing one, so the sweep
// removes it.
type limiter struct {
	mu        sync.Mutex
	rate      float64
	burst     float64
	buckets   map[string]ipBucket
	now       func() time.Time
	lastSweep time.Time
}

func newLimiter(perMinute, burst int) *limiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	if burst <= 0 {
		burst = 10
	}
	return &limiter{
		rate:    float64(perMinute) / 60.0,
		burst:   float64(burst),
		buckets: make(map[string]ipBucket),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (l *limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= sweepInterval {
		l.sweepLocked(now)
	}
	bucket, ok := l.buckets[ip]
	if !ok {
		bucket = ipBucket{tokens: l.burst, last: now}
	}

	if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
		bucket.tokens = min(bucket.tokens+elapsed*l.rate, l.burst)
		bucket.last = now
	}

	if bucket.tokens < 1 {
		l.buckets[ip] = bucket
		return false
	}

	bucket.tokens--
	l.buckets[ip] = bucket
	return true
}

func (l *limiter) sweepLocked(now time.Time) {
	for ip, b := range l.buckets {
		if b.tokens+now.Sub(b.last).Seconds()*l.rate >= l.burst {
			delete(l.buckets, ip)
		}
	}
	l.lastSweep = now
}

// RateLimitMiddleware enforces per-IP connection limits using a token bucket.
func RateLimitMiddleware(limitPerMinute, burst int, logger *log.Logger) wish.Middleware {
	return rateLimit(newLimiter(limitPerMinute, burst), logger)
}

func rateLimit(l *limiter, logger *log.Logger) wish.Middleware {
	logger = logging.OrDiscard(logger)
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ip := router.RemoteIP(s)
			if !l.allow(ip) {
				logger.Warn("connection throttled", "event", "rate_limit_throttled", "remote_ip", ip)
				refuse(s, ErrRateLimited)
				return
			}
			next(s)
		}
	}
}
