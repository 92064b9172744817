// Package themectx owns the active theme for one view tree: it resolves the
// initial mode, persists every toggle, and distributes one consistent
// snapshot per render pass to every consumer beneath the Provider.
package themectx

import (
	"sync"

	"github.com/charmbracelet/log"

	"portfolio-terminal/internal/appearance"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
)

// Environment bundles the two external capabilities resolution needs.
// A nil *Environment means the environment cannot be queried at all.
type Environment struct {
	Prefs  prefs.Store
	System appearance.SystemAppearance
}

// Source records which rule decided the initial mode.
type Source string

const (
	SourcePersisted Source = "persisted"
	SourceSystem    Source = "system"
	SourceDefault   Source = "default"
)

// Active is the distributed value: the mode, its token table, and the
// toggle. Version identifies the snapshot so render caches can be checked
// against it.
type Active struct {
	Mode    theme.Mode
	Tokens  *theme.Tokens
	Toggle  func() theme.Mode
	Version uint64
}

// Option configures a Store.
type Option func(*Store)

// WithMarker applies the global dark marker at construction and on every toggle.
func WithMarker(m appearance.Marker) Option {
	return func(s *Store) { s.marker = m }
}

// WithLogger sets the logger; the default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store is the theme preference store.
type Store struct {
	// toggleMu serializes toggles so the persisted value and the marker
	// always match the last flip. Reads only take mu.
	toggleMu sync.Mutex

	mu      sync.RWMutex
	mode    theme.Mode
	version uint64
	source  Source

	prefs  prefs.Store
	marker appearance.Marker
	logger *log.Logger

	subMu  sync.Mutex
	subs   map[int]func(Active)
	nextID int
}

// Resolve applies the initialization policy without side effects:
// persisted "dark"/"light" wins, anything else falls through to the system
// signal, and an unavailable environment resolves to Light untouched.
func Resolve(env *Environment, logger *log.Logger) (theme.Mode, Source) {
	if env == nil {
		return theme.Light, SourceDefault
	}
	logger = logging.OrDiscard(logger)

	if env.Prefs != nil {
		raw, ok, err := env.Prefs.Get(prefs.ThemeKey)
		switch {
		case err != nil:
			logger.Warn("theme preference unreadable, treating as absent", "event", "theme_prefs_read_failed", "err", err)
		case ok:
			if mode, valid := theme.ParseMode(raw); valid {
				return mode, SourcePersisted
			}
			logger.Debug("ignoring malformed theme preference", "event", "theme_prefs_malformed", "value", raw)
		}
	}

	if env.System != nil && env.System.PrefersDark() {
		return theme.Dark, SourceSystem
	}
	return theme.Light, SourceSystem
}

// NewStore resolves the initial mode and applies the marker. It never
// writes persistence.
func NewStore(env *Environment, opts ...Option) *Store {
	s := &Store{subs: map[int]func(Active){}}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDiscard(s.logger)
	if env != nil {
		s.prefs = env.Prefs
	}

	s.mode, s.source = Resolve(env, s.logger)
	s.logger.Debug("theme resolved", "event", "theme_resolved", "mode", s.mode, "source", s.source)
	s.applyMarker(s.mode)
	return s
}

// Active returns the current {Mode, Tokens, Toggle}. Pure read.
func (s *Store) Active() Active {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

// Mode returns the current mode.
func (s *Store) Mode() theme.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Version increments once per toggle; consumers compare it to decide
// whether a cached render is stale.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Source reports which rule decided the initial mode.
func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Toggle flips the mode, persists it best-effort, applies the marker and
// notifies subscribers. It returns the new mode. Concurrent toggles are
// applied one at a time; subscribers run outside the toggle lock and may
// toggle again.
func (s *Store) Toggle() theme.Mode {
	s.toggleMu.Lock()
	s.mu.Lock()
	s.mode = s.mode.Toggle()
	s.version++
	snap := s.activeLocked()
	s.mu.Unlock()

	s.persist(snap.Mode)
	s.applyMarker(snap.Mode)
	s.toggleMu.Unlock()

	s.notify(snap)
	return snap.Mode
}

// Subscribe registers fn to receive the snapshot after every toggle. The
// returned function unsubscribes and is safe to call more than once.
func (s *Store) Subscribe(fn func(Active)) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

func (s *Store) activeLocked() Active {
	return Active{Mode: s.mode, Tokens: theme.TokensFor(s.mode), Toggle: s.Toggle, Version: s.version}
}

func (s *Store) persist(mode theme.Mode) {
	if s.prefs == nil {
		return
	}
	if err := s.prefs.Set(prefs.ThemeKey, mode.String()); err != nil {
		s.logger.Warn("theme preference not saved", "event", "theme_persist_failed", "mode", mode, "err", err)
	}
}

func (s *Store) applyMarker(mode theme.Mode) {
	if s.marker != nil {
		s.marker.SetDark(mode.IsDark())
	}
}

func (s *Store) notify(snap Active) {
	s.subMu.Lock()
	fns := make([]func(Active), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
