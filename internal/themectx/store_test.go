package themectx

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-terminal/internal/appearance"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
)

type fakePrefs struct {
	mu       sync.Mutex
	values   map[string]string
	getErr   error
	setErr   error
	getCalls int
	setCalls int
}

func newFakePrefs(kv map[string]string) *fakePrefs {
	if kv == nil {
		kv = map[string]string{}
	}
	return &fakePrefs{values: kv}
}

func (f *fakePrefs) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakePrefs) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakePrefs) stored() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[prefs.ThemeKey]
	return v, ok
}

type fakeSystem struct {
	dark  bool
	calls int
}

func (f *fakeSystem) PrefersDark() bool {
	f.calls++
	return f.dark
}

func TestResolvePrecedenceTable(t *testing.T) {
	cases := []struct {
		name       string
		persisted  map[string]string
		systemDark bool
		wantMode   theme.Mode
		wantSource Source
		wantSysQ   int
	}{
		{name: "persisted dark, system light", persisted: map[string]string{prefs.ThemeKey: "dark"}, systemDark: false, wantMode: theme.Dark, wantSource: SourcePersisted},
		{name: "persisted light, system dark", persisted: map[string]string{prefs.ThemeKey: "light"}, systemDark: true, wantMode: theme.Light, wantSource: SourcePersisted},
		{name: "absent, system dark", systemDark: true, wantMode: theme.Dark, wantSource: SourceSystem, wantSysQ: 1},
		{name: "absent, system light", systemDark: false, wantMode: theme.Light, wantSource: SourceSystem, wantSysQ: 1},
		{name: "malformed, system light", persisted: map[string]string{prefs.ThemeKey: "blue"}, systemDark: false, wantMode: theme.Light, wantSource: SourceSystem, wantSysQ: 1},
		{name: "malformed, system dark", persisted: map[string]string{prefs.ThemeKey: "DARK"}, systemDark: true, wantMode: theme.Dark, wantSource: SourceSystem, wantSysQ: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sys := &fakeSystem{dark: tc.systemDark}
			mode, source := Resolve(&Environment{Prefs: newFakePrefs(tc.persisted), System: sys}, nil)
			assert.Equal(t, tc.wantMode, mode)
			assert.Equal(t, tc.wantSource, source)
			assert.Equal(t, tc.wantSysQ, sys.calls)
		})
	}
}

func TestResolveUnavailableEnvironmentDefaultsLight(t *testing.T) {
	mode, source := Resolve(nil, nil)
	assert.Equal(t, theme.Light, mode)
	assert.Equal(t, SourceDefault, source)

	s := NewStore(nil)
	assert.Equal(t, theme.Light, s.Mode())
	assert.Equal(t, SourceDefault, s.Source())
	assert.Same(t, theme.LightTokens(), s.Active().Tokens)
}

func TestResolveReadErrorFallsThroughToSystem(t *testing.T) {
	p := newFakePrefs(nil)
	p.getErr = errors.New("disk gone")
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	require.NoError(t, err)

	mode, source := Resolve(&Environment{Prefs: p, System: appearance.Static(true)}, logger)
	assert.Equal(t, theme.Dark, mode)
	assert.Equal(t, SourceSystem, source)
	assert.Contains(t, buf.String(), "theme_prefs_read_failed")
}

func TestResolveNilCapabilities(t *testing.T) {
	mode, source := Resolve(&Environment{}, nil)
	assert.Equal(t, theme.Light, mode)
	assert.Equal(t, SourceSystem, source)
}

func TestNewStoreDoesNotPersist(t *testing.T) {
	p := newFakePrefs(nil)
	NewStore(&Environment{Prefs: p, System: appearance.Static(true)})
	assert.Zero(t, p.setCalls)
	_, ok := p.stored()
	assert.False(t, ok)
}

func TestToggleTwiceIsIdempotent(t *testing.T) {
	p := newFakePrefs(map[string]string{prefs.ThemeKey: "light"})
	s := NewStore(&Environment{Prefs: p, System: appearance.Static(true)})
	require.Equal(t, theme.Light, s.Mode())

	assert.Equal(t, theme.Dark, s.Toggle())
	assert.Equal(t, theme.Light, s.Toggle())

	v, _ := p.stored()
	assert.Equal(t, "light", v)
	assert.Equal(t, uint64(2), s.Version())
	assert.Same(t, theme.LightTokens(), s.Active().Tokens)
}

func TestTogglePersistsAndReloadReproducesMode(t *testing.T) {
	p := newFakePrefs(nil)
	sys := &fakeSystem{dark: true}
	s := NewStore(&Environment{Prefs: p, System: sys})
	require.Equal(t, theme.Dark, s.Mode())

	assert.Equal(t, theme.Light, s.Toggle())
	v, ok := p.stored()
	require.True(t, ok)
	assert.Equal(t, "light", v)

	reloadSys := &fakeSystem{dark: true}
	reloaded := NewStore(&Environment{Prefs: p, System: reloadSys})
	assert.Equal(t, theme.Light, reloaded.Mode())
	assert.Equal(t, SourcePersisted, reloaded.Source())
	assert.Zero(t, reloadSys.calls, "persisted value must win without consulting the system")
}

func TestTokensAlwaysMatchMode(t *testing.T) {
	s := NewStore(&Environment{Prefs: prefs.NewMemoryStore(), System: appearance.Static(false)})
	for i := 0; i < 5; i++ {
		a := s.Active()
		assert.Same(t, theme.TokensFor(a.Mode), a.Tokens)
		require.NotNil(t, a.Toggle)
		a.Toggle()
	}
}

func TestToggleSwallowsWriteFailure(t *testing.T) {
	p := newFakePrefs(nil)
	p.setErr = errors.New("read-only filesystem")
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	require.NoError(t, err)

	s := NewStore(&Environment{Prefs: p, System: appearance.Static(false)}, WithLogger(logger))
	assert.NotPanics(t, func() { s.Toggle() })
	assert.Equal(t, theme.Dark, s.Mode())
	assert.Equal(t, 1, p.setCalls)
	assert.Contains(t, buf.String(), "theme_persist_failed")

	p.setErr = nil
	s.Toggle()
	v, _ := p.stored()
	assert.Equal(t, "light", v, "next toggle writes independently")
}

func TestMarkerFollowsMode(t *testing.T) {
	var marks []bool
	marker := appearance.MarkerFunc(func(d bool) { marks = append(marks, d) })

	s := NewStore(&Environment{Prefs: prefs.NewMemoryStore(), System: appearance.Static(true)}, WithMarker(marker))
	s.Toggle()
	s.Toggle()
	assert.Equal(t, []bool{true, false, true}, marks)
}

func TestSubscribersSeeEveryToggle(t *testing.T) {
	s := NewStore(nil)
	var seen []theme.Mode
	unsubscribe := s.Subscribe(func(a Active) {
		assert.Same(t, theme.TokensFor(a.Mode), a.Tokens)
		seen = append(seen, a.Mode)
	})

	s.Toggle()
	s.Toggle()
	unsubscribe()
	unsubscribe()
	s.Toggle()

	assert.Equal(t, []theme.Mode{theme.Dark, theme.Light}, seen)
	assert.NotPanics(t, func() { s.Subscribe(nil)() })
}

func TestUnavailableEnvironmentToggleStillWorks(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, theme.Dark, s.Toggle())
	assert.Same(t, theme.DarkTokens(), s.Active().Tokens)
}

func TestConcurrentReadsDuringToggle(t *testing.T) {
	s := NewStore(&Environment{Prefs: prefs.NewMemoryStore()})
	p := NewProvider(s)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a := MustUse(p.Frame(context.Background()))
				if a.Tokens != theme.TokensFor(a.Mode) {
					t.Errorf("mixed snapshot: mode=%v tokens=%s", a.Mode, a.Tokens.Name)
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		s.Toggle()
	}
	wg.Wait()
}

func TestScenarioFreshSessionSystemDark(t *testing.T) {
	p := prefs.NewMemoryStore()
	s := NewStore(&Environment{Prefs: p, System: appearance.Static(true)})
	assert.Same(t, theme.DarkTokens(), s.Active().Tokens)

	s.Toggle()
	assert.Same(t, theme.LightTokens(), s.Active().Tokens)
	v, ok, err := p.Get(prefs.ThemeKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestScenarioPersistedLightOverridesSystemDark(t *testing.T) {
	p := prefs.NewMemoryStore()
	require.NoError(t, p.Set(prefs.ThemeKey, "light"))
	s := NewStore(&Environment{Prefs: p, System: appearance.Static(true)})
	assert.Same(t, theme.LightTokens(), s.Active().Tokens)
}

func TestScenarioMalformedPersistedValue(t *testing.T) {
	p := prefs.NewMemoryStore()
	require.NoError(t, p.Set(prefs.ThemeKey, "blue"))
	s := NewStore(&Environment{Prefs: p, System: appearance.Static(false)})
	assert.Same(t, theme.LightTokens(), s.Active().Tokens)
}

// gatedPrefs holds the first Set until release is closed.
type gatedPrefs struct {
	*fakePrefs
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedPrefs) Set(key, value string) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.fakePrefs.Set(key, value)
}

func TestConcurrentTogglesPersistTheLastFlip(t *testing.T) {
	p := &gatedPrefs{fakePrefs: newFakePrefs(nil), entered: make(chan struct{}), release: make(chan struct{})}
	s := NewStore(&Environment{Prefs: p, System: appearance.Static(false)})
	require.Equal(t, theme.Light, s.Mode())

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		s.Toggle()
	}()
	<-p.entered

	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		s.Toggle()
	}()

	select {
	case <-secondDone:
		t.Fatal("second toggle finished while the first was still persisting")
	case <-time.After(50 * time.Millisecond):
	}

	close(p.release)
	<-firstDone
	<-secondDone

	assert.Equal(t, theme.Light, s.Mode())
	v, ok := p.stored()
	require.True(t, ok)
	assert.Equal(t, s.Mode().String(), v)
}

func TestManyConcurrentTogglesKeepStorageInSync(t *testing.T) {
	p := newFakePrefs(nil)
	s := NewStore(&Environment{Prefs: p, System: appearance.Static(false)})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				s.Toggle()
			}
		}()
	}
	wg.Wait()

	v, ok := p.stored()
	require.True(t, ok)
	assert.Equal(t, s.Mode().String(), v)
	assert.Equal(t, theme.Light, s.Mode(), "an even number of flips")
}
