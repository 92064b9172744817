package sections

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
)

func renderTestimonials(st *theme.Styles, site *content.Site, width int) string {
	t := site.Testimonials
	cols, cell := columns(width, 30, len(t.Items))
	cards := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		inner := cardInner(st, cell)
		lines := []string{
			st.CardPrimary.Render(Stars(item.Rating)),
			"",
			wrap(st.CardBody.Italic(true), inner, "“"+item.Quote+"”"),
			"",
			wrap(st.CardTitle, inner, item.Name),
		}
		if item.Role != "" {
			lines = append(lines, wrap(st.CardMuted, inner, item.Role))
		}
		cards = append(cards, card(st, cell, lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionHeader(st, width, t.Title, t.Intro),
		"",
		grid(cards, cols),
	)
}

// Stars renders a five-point rating.
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
