// Package prefs provides the durable key-value surface the theme store
// persists its preference into.
package prefs

import (
	"errors"
	"strings"
	"sync"
)

// ThemeKey is the fixed key the theme preference is stored under.
const ThemeKey = "portfolio-theme"

// ErrInvalidKey is returned for empty keys.
var ErrInvalidKey = errors.New("invalid preference key")

// Store is a minimal key-value persistence surface.
//
// Get reports ok=false when the key has never been written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

type scopedStore struct {
	base  Store
	scope string
}

// Scoped namespaces every key under scope, so several visitors can share
// one backend without seeing each other's choices.
func Scoped(base Store, scope string) Store {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return base
	}
	return &scopedStore{base: base, scope: scope}
}

func (s *scopedStore) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	return s.base.Get(s.scope + "/" + key)
}

func (s *scopedStore) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return s.base.Set(s.scope+"/"+key, value)
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
