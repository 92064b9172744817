package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/content"
	applog "portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
)

// Serve opens the preference backend (sqlite unless configured otherwise),
// loads and optionally watches the content file, and runs the SSH server
// until ctx ends.
func Serve(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	logger = applog.OrDiscard(logger)

	backend := cfg.Prefs.Backend
	if backend == "" {
		backend = prefs.BackendSQLite
	}
	store, closePrefs, err := prefs.Open(backend, cfg.Prefs.Path)
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer func() {
		if err := closePrefs(); err != nil {
			logger.Warn("closing preferences", "event", "prefs_close_failed", "err", err)
		}
	}()

	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	holder := content.NewHolder(site)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Content.Watch && cfg.Content.Path != "" {
		if err := holder.Watch(ctx, cfg.Content.Path, logger); err != nil {
			return err
		}
	}

	runtime, err := New(cfg, Deps{Prefs: store, Content: holder, Logger: logger})
	if err != nil {
		return fmt.Errorf("build ssh server: %w", err)
	}
	logger.Debug("preferences ready", "event", "prefs_opened", "backend", backend, "path", cfg.Prefs.Path)
	return runtime.Run(ctx)
}
