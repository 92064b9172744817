package server

import (
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"

	"portfolio-terminal/internal/logging"
)

// MaxSessionsMiddleware caps concurrent sessions. A slot is released once,
// when the session context ends or the handler returns, whichever is first.
// A panicking handler is logged and still releases its slot.
func MaxSessionsMiddleware(limit int, logger *log.Logger) wish.Middleware {
	if limit <= 0 {
		limit = 1
	}
	logger = logging.OrDiscard(logger)
	slots := make(chan struct{}, limit)

	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			select {
			case slots <- struct{}{}:
			default:
				logger.Warn("session refused", "event", "max_sessions_exceeded", "max", limit, "user", s.User())
				refuse(s, ErrTooManySessions)
				return
			}

			var once sync.Once
			release := func() { once.Do(func() { <-slots }) }
			defer release()

			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-s.Context().Done():
					release()
				case <-done:
				}
			}()

			defer func() {
				if r := recover(); r != nil {
					logger.Error("session handler panicked", "event", "session_panic", "panic", r, "stack", string(debug.Stack()))
				}
			}()
			next(s)
		}
	}
}
