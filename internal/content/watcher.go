package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"portfolio-terminal/internal/logging"
)

// Holder serves the current Site to concurrent sessions. Reloads swap the
// pointer; readers never see a half-parsed document.
type Holder struct {
	site atomic.Pointer[Site]
}

func NewHolder(site *Site) *Holder {
	h := &Holder{}
	if site == nil {
		site = Default()
	}
	h.site.Store(site)
	return h
}

func (h *Holder) Site() *Site { return h.site.Load() }

// Reload parses path and swaps it in. The previous Site stays active on
// error.
func (h *Holder) Reload(path string) error {
	site, err := Load(path)
	if err != nil {
		return err
	}
	h.site.Store(site)
	return nil
}

// Watch reloads the holder whenever path is written or recreated, until
// ctx is done. The directory is watched so editors that replace the file
// by rename are picked up.
func (h *Holder) Watch(ctx context.Context, path string, logger *log.Logger) error {
	if path == "" {
		return nil
	}
	logger = logging.OrDiscard(logger)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("content watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	go func() {
		defer watcher.Close()
		name := filepath.Base(path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if err := h.Reload(path); err != nil {
					logger.Warn("content reload failed", "event", "content_reload_failed", "path", path, "err", err)
					continue
				}
				logger.Info("content reloaded", "event", "content_reloaded", "path", path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("content watcher error", "event", "content_watch_error", "err", err)
			}
		}
	}()
	return nil
}
