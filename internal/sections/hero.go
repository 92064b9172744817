package sections

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderHero(f frame) string {
	st, width := f.st, f.width
	h := f.site.Hero
	headline := st.Heading.Render(h.Headline)
	if h.Highlight != "" {
		headline += st.Primary.Render(h.Highlight)
	}

	buttons := []string{st.ButtonPrimary.Render(f.linkLabel(heroLink, h.PrimaryCTA.Label))}
	if h.SecondaryCTA.Label != "" {
		buttons = append(buttons, st.ButtonSecondary.Render(h.SecondaryCTA.Label+" ↗"))
	}

	parts := []string{
		lipgloss.PlaceHorizontal(width, lipgloss.Center, st.Badge.Render(h.Badge)),
		"",
		centered(st.Body, width, headline),
		"",
		centered(st.Lead, width, h.Pitch),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, flow(width, buttons...)),
	}
	if h.SecondaryCTA.URL != "" {
		parts = append(parts, centered(st.Muted, width, h.SecondaryCTA.URL))
	}
	if strip := motionStrip(h.MotionStrip, width); strip != "" {
		parts = append(parts, "", st.Accent.Render(strip))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// motionStrip repeats pattern to exactly width cells.
func motionStrip(pattern string, width int) string {
	if pattern == "" || width <= 0 {
		return ""
	}
	n := lipgloss.Width(pattern)
	if n == 0 {
		return ""
	}
	repeated := strings.Repeat(pattern, width/n+1)
	return ansi.Truncate(repeated, width, "")
}
