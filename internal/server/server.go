// Package server serves the portfolio page to SSH visitors through wish.
package server

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	gossh "golang.org/x/crypto/ssh"

	"portfolio-terminal/internal/config"
	applog "portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/sections"
)

const (
	version         = "dev"
	shutdownTimeout = 10 * time.Second
)

// Deps are the resources shared by every session. Nil Prefs falls back to
// an in-memory store; nil Content serves the embedded site.
type Deps struct {
	Prefs   prefs.Store
	Content sections.SiteSource
	Logger  *log.Logger
}

// DefaultChain is the middleware in front of the page, outermost first:
// access log, rate limit, session cap, PTY gate, visitor identity.
func DefaultChain(cfg config.SSHConfig, logger *log.Logger) []router.Descriptor {
	logger = applog.OrDiscard(logger)
	return []router.Descriptor{
		{Name: "access-log", Middleware: logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel)},
		{Name: "rate-limit", Middleware: RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst, logger)},
		{Name: "max-sessions", Middleware: MaxSessionsMiddleware(cfg.MaxSessions, logger)},
		{Name: "active-term", Middleware: activeterm.Middleware()},
		router.IdentityDescriptor(),
	}
}

// Runtime wires config + middleware + Wish server as a testable unit.
type Runtime struct {
	cfg    config.SSHConfig
	chain  []router.Descriptor
	server *ssh.Server
	logger *log.Logger
}

// New builds the server without listening. The host key is generated at
// cfg.SSH.HostKeyPath when missing.
func New(cfg config.Config, deps Deps) (*Runtime, error) {
	deps.Logger = applog.OrDiscard(deps.Logger)
	if deps.Prefs == nil {
		deps.Prefs = prefs.NewMemoryStore()
	}

	chain := append(DefaultChain(cfg.SSH, deps.Logger), SessionDescriptor(deps))

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSH.Address()),
		wish.WithHostKeyPath(cfg.SSH.HostKeyPath),
		wish.WithIdleTimeout(cfg.SSH.IdleTimeout.Std()),
		// Any key is accepted; it only identifies the visitor's preferences.
		wish.WithPublicKeyAuth(func(ssh.Context, ssh.PublicKey) bool { return true }),
		wish.WithKeyboardInteractiveAuth(func(ssh.Context, gossh.KeyboardInteractiveChallenge) bool { return true }),
		wish.WithMiddleware(router.ForWish(chain)...),
	}
	if cfg.SSH.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(cfg.SSH.MaxTimeout.Std()))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return nil, mapStartupError(err)
	}

	return &Runtime{cfg: cfg.SSH, chain: chain, server: srv, logger: deps.Logger}, nil
}

// MiddlewareIDs lists the chain, outermost first.
func (r *Runtime) MiddlewareIDs() []string {
	return router.Names(r.chain)
}

func (r *Runtime) Address() string {
	return r.server.Addr
}

// Run serves until ctx is cancelled or the process receives SIGINT/SIGTERM.
func (r *Runtime) Run(ctx context.Context) error {
	ctx, stopSignals := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := r.server.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("shutdown incomplete", "event", "shutdown_failed", "err", err)
		}
	}()

	r.logger.Info("ssh server starting",
		"event", "startup",
		"version", version,
		"address", r.server.Addr,
		"middleware", r.MiddlewareIDs(),
		"host_key_path", r.cfg.HostKeyPath,
		"idle_timeout", r.cfg.IdleTimeout,
		"max_sessions", r.cfg.MaxSessions,
	)
	err := r.server.ListenAndServe()
	if err == nil || errors.Is(err, ssh.ErrServerClosed) {
		r.logger.Info("ssh server stopped", "event", "shutdown")
		return nil
	}

	return mapStartupError(err)
}
