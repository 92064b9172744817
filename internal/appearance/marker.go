package appearance

import "github.com/charmbracelet/lipgloss"

// Marker is the global "dark mode active" flag on the root visual scope.
type Marker interface {
	SetDark(dark bool)
}

// TerminalMarker flips the renderer-wide dark background flag, so adaptive
// colors (help bar, bubbles chrome) follow the component tokens.
type TerminalMarker struct {
	Renderer *lipgloss.Renderer
}

func (m TerminalMarker) SetDark(dark bool) {
	if m.Renderer == nil {
		return
	}
	m.Renderer.SetHasDarkBackground(dark)
}

// MarkerFunc adapts a function to Marker.
type MarkerFunc func(dark bool)

func (f MarkerFunc) SetDark(dark bool) { f(dark) }
