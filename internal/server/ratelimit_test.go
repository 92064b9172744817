package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddlewareThrottlesByIP(t *testing.T) {
	called := 0
	handler := RateLimitMiddleware(60, 2, nil)(func(ssh.Session) { called++ })

	session := newFakeSession(context.Background(), "guest", addr("203.0.113.10"))
	handler(session)
	handler(session)
	handler(session)

	assert.Equal(t, 2, called)
	assert.Equal(t, []string{"rate limit exceeded\n"}, session.output())
	code, ok := session.recordedExitCode()
	assert.True(t, ok)
	assert.Equal(t, 1, code)
}

func TestRateLimitMiddlewareIsolatedPerIP(t *testing.T) {
	called := 0
	handler := RateLimitMiddleware(60, 1, nil)(func(ssh.Session) { called++ })

	a := newFakeSession(context.Background(), "guest", addr("203.0.113.10"))
	b := newFakeSession(context.Background(), "guest", addr("203.0.113.11"))

	handler(a)
	handler(a)
	handler(b)

	assert.Equal(t, 2, called)
	assert.Len(t, a.output(), 1, "second connection from a is throttled")
	assert.Empty(t, b.output())
}

func TestLimiterRefillsOverTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(60, 1)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("198.51.100.1"))
	assert.False(t, l.allow("198.51.100.1"))

	now = now.Add(500 * time.Millisecond)
	assert.False(t, l.allow("198.51.100.1"), "half a token is not enough")

	now = now.Add(600 * time.Millisecond)
	assert.True(t, l.allow("198.51.100.1"))

	now = now.Add(time.Hour)
	assert.True(t, l.allow("198.51.100.1"))
	assert.False(t, l.allow("198.51.100.1"), "refill is capped at burst")
}

func TestLimiterDefaults(t *testing.T) {
	l := newLimiter(0, 0)
	assert.InDelta(t, 0.5, l.rate, 1e-9)
	assert.InDelta(t, 10, l.burst, 1e-9)
}

func TestLimiterSweepsRefilledBuckets(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	l := newLimiter(6, 1) // one token every ten seconds
	l.now = func() time.Time { return now }

	for i := range 100 {
		assert.True(t, l.allow(fmt.Sprintf("198.51.100.%d", i)))
	}
	assert.Len(t, l.buckets, 100)

	now = start.Add(55 * time.Second)
	assert.True(t, l.allow("203.0.113.7"))

	now = start.Add(sweepInterval)
	assert.True(t, l.allow("203.0.113.8"))
	assert.Len(t, l.buckets, 2, "refilled buckets are dropped, refilling ones kept")
	assert.False(t, l.allow("203.0.113.7"), "a refilling bucket stays throttled")
}
