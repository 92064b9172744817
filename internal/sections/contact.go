package sections

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderContact(f frame) string {
	st, width := f.st, f.width
	c := f.site.Contact
	b := f.site.Brand

	parts := []string{
		sectionHeader(st, width, c.Title, c.Intro),
		"",
	}

	reach := []string{st.Primary.Render("✉ ") + st.Body.Render(c.Email)}
	if c.Phone != "" {
		reach = append(reach, st.Primary.Render("☏ ")+st.Body.Render(c.Phone))
	}
	parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, flow(width, reach...)), "")

	brand := st.Primary.Render(b.Primary) + st.Secondary.Render(b.Secondary)
	parts = append(parts, centered(st.Body, width, brand))
	if b.Blurb != "" {
		parts = append(parts, centered(st.Muted, width, b.Blurb))
	}

	if len(c.QuickLinks) > 0 {
		labels := make([]string, 0, len(c.QuickLinks))
		for i, l := range c.QuickLinks {
			labels = append(labels, f.linkLabel(quickLink(f.site, i), l.Label))
		}
		parts = append(parts, "", centered(st.Secondary, width, strings.Join(labels, "  ·  ")))
	}

	if b.PortfolioURL != "" {
		label := c.PortfolioLabel
		if label == "" {
			label = b.PortfolioURL
		}
		parts = append(parts, "", centered(st.Accent, width, label+" ↗"), centered(st.Muted, width, b.PortfolioURL))
	}

	parts = append(parts, "", st.GradientRule(width), centered(st.Muted, width, b.Copyright))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
