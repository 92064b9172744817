// Package appearance answers "does this environment prefer a dark color
// scheme" and carries the dark marker back to the terminal.
package appearance

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// OverrideEnv forces the system preference when set to "dark" or "light".
const OverrideEnv = "PORTFOLIO_APPEARANCE"

// SystemAppearance is the read-only system color-scheme signal.
type SystemAppearance interface {
	PrefersDark() bool
}

// Detector is one source of the system signal. Detect returns ok=false when
// the source has nothing to say, so the next detector is consulted.
type Detector interface {
	Name() string
	Detect() (prefersDark bool, ok bool)
}

// Chain asks each detector in order and answers with the first that knows.
// When none do, the environment is treated as light.
type Chain struct {
	detectors []Detector
	source    string
}

func NewChain(detectors ...Detector) *Chain {
	out := make([]Detector, 0, len(detectors))
	for _, d := range detectors {
		if d != nil {
			out = append(out, d)
		}
	}
	return &Chain{detectors: out}
}

func (c *Chain) PrefersDark() bool {
	for _, d := range c.detectors {
		if dark, ok := d.Detect(); ok {
			c.source = d.Name()
			return dark
		}
	}
	c.source = ""
	return false
}

// Source names the detector that answered the last PrefersDark call; empty
// means the fallback was used.
func (c *Chain) Source() string { return c.source }

// Static is a fixed answer, mostly for tests and flags.
type Static bool

func (s Static) PrefersDark() bool { return bool(s) }

// EnvDetector reads OverrideEnv.
type EnvDetector struct {
	Lookup func(string) (string, bool)
}

func (EnvDetector) Name() string { return "env" }

func (d EnvDetector) Detect() (bool, bool) {
	v, ok := lookup(d.Lookup, OverrideEnv)
	if !ok {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// ColorFGBGDetector reads the COLORFGBG convention ("fg;bg" or
// "fg;default;bg") exported by rxvt, Konsole and friends.
type ColorFGBGDetector struct {
	Lookup func(string) (string, bool)
}

func (ColorFGBGDetector) Name() string { return "colorfgbg" }

func (d ColorFGBGDetector) Detect() (bool, bool) {
	v, ok := lookup(d.Lookup, "COLORFGBG")
	if !ok {
		return false, false
	}
	parts := strings.Split(strings.TrimSpace(v), ";")
	if len(parts) < 2 {
		return false, false
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil || bg < 0 || bg > 15 {
		return false, false
	}
	// 7 (white) and 15 (bright white) are the light backgrounds; 8 is bright black.
	return bg != 7 && bg != 15, true
}

// RendererDetector asks the terminal behind a lipgloss renderer. Over SSH
// the renderer queries the visitor's terminal.
type RendererDetector struct {
	Renderer *lipgloss.Renderer
}

func (RendererDetector) Name() string { return "terminal" }

func (d RendererDetector) Detect() (bool, bool) {
	if d.Renderer == nil {
		return false, false
	}
	return d.Renderer.HasDarkBackground(), true
}

// Default is the detector chain used by the local CLI and the SSH server.
func Default(r *lipgloss.Renderer) *Chain {
	return NewChain(EnvDetector{}, ColorFGBGDetector{}, RendererDetector{Renderer: r})
}

func lookup(fn func(string) (string, bool), key string) (string, bool) {
	if fn == nil {
		fn = os.LookupEnv
	}
	v, ok := fn(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
