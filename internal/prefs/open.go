package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultSQLitePath is prefs.db next to the JSON file default.
func DefaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "portfolio-terminal", "prefs.db")
}

// Open builds the named backend. An empty path selects the backend's
// default location. The returned close func is never nil.
func Open(backend, path string) (Store, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendFile, "":
		return NewFileStore(path), noop, nil
	case BackendSQLite:
		if path == "" {
			path = DefaultSQLitePath()
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown preference backend %q", backend)
	}
}
