package sections

import "github.com/charmbracelet/lipgloss"

func renderServices(f frame) string {
	st, width := f.st, f.width
	s := f.site.Services
	cols, cell := columns(width, 30, len(s.Items))
	cards := make([]string, 0, len(s.Items))
	for i, item := range s.Items {
		inner := cardInner(st, cell)
		lines := []string{
			wrap(st.CardTitle, inner, item.Title),
			"",
			wrap(st.CardBody, inner, item.Description),
			"",
		}
		for _, f := range item.Features {
			lines = append(lines, wrap(st.CardBody, inner, "✓ "+f))
		}
		lines = append(lines, "", wrap(st.CardPrimary, inner, f.linkLabel(serviceLink(i), item.Button.Label)))
		cards = append(cards, card(st, cell, lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeader(st, width, s.Title, s.Intro),
		"",
		grid(cards, cols),
	)
}
