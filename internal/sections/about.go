package sections

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
)

func renderAbout(st *theme.Styles, site *content.Site, width int) string {
	a := site.About
	parts := []string{sectionHeader(st, width, a.Title, a.Intro), ""}

	cols, cell := columns(width, 24, len(a.Steps))
	steps := make([]string, 0, len(a.Steps))
	for i, step := range a.Steps {
		inner := cardInner(st, cell)
		body := lipgloss.JoinVertical(lipgloss.Left,
			st.CardPrimary.Render(fmt.Sprintf("%02d", i+1)),
			wrap(st.CardTitle, inner, step.Title),
			wrap(st.CardBody, inner, step.Description),
		)
		steps = append(steps, card(st, cell, body))
	}
	parts = append(parts, grid(steps, cols))

	if len(a.Featured) > 0 {
		parts = append(parts, "", centered(st.Heading, width, a.FeaturedTitle), "")
		cols, cell := columns(width, 24, len(a.Featured))
		works := make([]string, 0, len(a.Featured))
		for _, w := range a.Featured {
			inner := cardInner(st, cell)
			lines := []string{wrap(st.CardTitle, inner, w.Title), wrap(st.CardMuted, inner, w.Description)}
			if w.Stats != "" {
				lines = append(lines, "", wrap(st.CardPrimary, inner, w.Stats))
			}
			works = append(works, card(st, cell, lipgloss.JoinVertical(lipgloss.Left, lines...)))
		}
		parts = append(parts, grid(works, cols))
	}

	if a.WhyTitle != "" {
		inner := cardInner(st, width)
		pills := make([]string, 0, len(a.Values))
		for _, v := range a.Values {
			pills = append(pills, st.Badge.Render(v.Value+" · "+v.Label))
		}
		lines := []string{
			centered(st.CardTitle, inner, a.WhyTitle),
			"",
			centered(st.CardBody, inner, a.WhyBody),
		}
		if len(pills) > 0 {
			lines = append(lines, "", lipgloss.PlaceHorizontal(inner, lipgloss.Center, pillRows(inner, pills)))
		}
		parts = append(parts, "", card(st, width, lipgloss.JoinVertical(lipgloss.Left, lines...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// pillRows packs pills greedily into rows no wider than width.
func pillRows(width int, pills []string) string {
	var rows []string
	var row []string
	used := 0
	for _, p := range pills {
		w := lipgloss.Width(p)
		if len(row) > 0 && used+cardGap+w > width {
			rows = append(rows, flow(width, row...))
			row, used = nil, 0
		}
		if len(row) > 0 {
			used += cardGap
		}
		row = append(row, p)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, flow(width, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
