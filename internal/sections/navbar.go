package sections

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/themectx"
)

// NavState is the navbar's local UI state.
type NavState struct {
	MenuOpen bool
}

// ToggleGlyph is the theme control's icon: the sun switches a dark page to
// light, the moon a light page to dark.
func ToggleGlyph(m theme.Mode) string {
	if m.IsDark() {
		return "☀"
	}
	return "☾"
}

// Targets lists the links the number keys activate, in key order: the
// section links followed by the call to action. Narrow terminals use the
// mobile set and its offsets.
func (p *Page) Targets(width int) []content.Link {
	nav := p.Site().Nav
	if IsMobile(width) {
		return append(slices.Clone(nav.MobileLinks), nav.MobileCTA)
	}
	return append(slices.Clone(nav.Links), nav.CTA)
}

// Navbar renders the sticky header, plus the open mobile menu below it.
func (p *Page) Navbar(ctx context.Context, width int, state NavState) string {
	active := themectx.MustUse(ctx)
	st := p.Styles(ctx)
	site := p.Site()
	if width <= 0 {
		width = DefaultWidth
	}

	brand := st.Primary.Background(lipgloss.Color(st.Tokens.NavBg)).Render(site.Brand.Primary) +
		st.NavLink.Render(site.Brand.Secondary)
	toggle := st.NavLink.Render("[t] " + ToggleGlyph(active.Mode))

	var right string
	if IsMobile(width) {
		menu := "☰"
		if state.MenuOpen {
			menu = "✕"
		}
		right = toggle + st.NavLink.Render("  [m] "+menu)
	} else {
		links := make([]string, 0, len(site.Nav.Links))
		for i, l := range site.Nav.Links {
			links = append(links, st.NavLink.Render(fmt.Sprintf("%d %s", i+1, l.Label)))
		}
		cta := st.ButtonPrimary.Padding(0, 1).Render(fmt.Sprintf("%d %s →", len(site.Nav.Links)+1, site.Nav.CTA.Label))
		right = strings.Join(links, st.NavLink.Render("   ")) + st.NavLink.Render("   ") + cta + st.NavLink.Render("   ") + toggle
	}

	gap := max(width-2-lipgloss.Width(brand)-lipgloss.Width(right), 1)
	line := st.NavLink.Render(" ") + brand + st.NavLink.Render(strings.Repeat(" ", gap)) + right
	bar := st.Nav.Width(width).MaxWidth(width).Render(line)

	if !IsMobile(width) || !state.MenuOpen {
		return bar
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, p.mobileMenu(st, site, width))
}

func (p *Page) mobileMenu(st *theme.Styles, site *content.Site, width int) string {
	inner := max(width-st.MobileMenu.GetHorizontalFrameSize(), 1)
	items := make([]string, 0, len(site.Nav.MobileLinks)+1)
	for i, l := range site.Nav.MobileLinks {
		items = append(items, st.MenuItem.Width(inner).Render(fmt.Sprintf("%d  %s", i+1, l.Label)))
	}
	cta := fmt.Sprintf("%d  %s →", len(site.Nav.MobileLinks)+1, site.Nav.MobileCTA.Label)
	items = append(items, st.ButtonPrimary.Width(inner).Align(lipgloss.Center).Render(cta))
	return st.MobileMenu.Width(width - st.MobileMenu.GetHorizontalBorderSize()).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
