package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Styles is the lipgloss rendering of one token table for one renderer.
// Text styles carry the page background so spans keep it; the Card*
// variants carry the card background instead.
type Styles struct {
	Tokens *Tokens

	Page      lipgloss.Style
	Heading   lipgloss.Style
	Lead      lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style

	Badge           lipgloss.Style
	ButtonPrimary   lipgloss.Style
	ButtonSecondary lipgloss.Style

	Card        lipgloss.Style
	CardTitle   lipgloss.Style
	CardBody    lipgloss.Style
	CardMuted   lipgloss.Style
	CardPrimary lipgloss.Style

	Nav        lipgloss.Style
	NavLink    lipgloss.Style
	MobileMenu lipgloss.Style
	MenuItem   lipgloss.Style

	renderer *lipgloss.Renderer
}

// NewStyles derives the style sheet for tokens. A nil renderer uses the
// lipgloss default renderer.
func NewStyles(r *lipgloss.Renderer, t *Tokens) *Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	s := &Styles{Tokens: t, renderer: r}
	page := r.NewStyle().Background(c(t.Background))
	s.Page = page.Foreground(c(t.Text))
	s.Heading = page.Foreground(c(t.Text)).Bold(true)
	s.Lead = page.Foreground(c(t.TextSecondary))
	s.Body = page.Foreground(c(t.Text))
	s.Muted = page.Foreground(c(t.TextMuted))
	s.Primary = page.Foreground(c(t.Primary)).Bold(true)
	s.Secondary = page.Foreground(c(t.Secondary))
	s.Accent = page.Foreground(c(t.Accent))

	s.Badge = r.NewStyle().
		Foreground(c(t.BadgeText)).
		Background(c(t.BadgeBg)).
		Padding(0, 2)
	s.ButtonPrimary = r.NewStyle().
		Foreground(c(t.ButtonPrimaryFg)).
		Background(c(t.ButtonPrimaryBg)).
		Bold(true).
		Padding(0, 3)
	s.ButtonSecondary = page.
		Foreground(c(t.ButtonSecondary)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(t.ButtonSecondary)).
		BorderBackground(c(t.Background)).
		Bold(true).
		Padding(0, 2)

	card := r.NewStyle().Background(c(t.CardBg))
	s.Card = card.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(t.Border)).
		Padding(1, 2)
	s.CardTitle = card.Foreground(c(t.Text)).Bold(true)
	s.CardBody = card.Foreground(c(t.TextSecondary))
	s.CardMuted = card.Foreground(c(t.TextMuted))
	s.CardPrimary = card.Foreground(c(t.Primary)).Bold(true)

	s.Nav = r.NewStyle().
		Background(c(t.NavBg)).
		Foreground(c(t.NavText)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(c(t.NavBorder))
	s.NavLink = r.NewStyle().Background(c(t.NavBg)).Foreground(c(t.NavText))
	s.MobileMenu = r.NewStyle().
		Background(c(t.MobileMenuBg)).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c(t.Shadow)).
		Padding(0, 2)
	s.MenuItem = r.NewStyle().Background(c(t.MobileMenuBg)).Foreground(c(t.Text))
	return s
}

// Renderer returns the renderer the styles were built for.
func (s *Styles) Renderer() *lipgloss.Renderer { return s.renderer }

// GradientRule renders a horizontal rule blending from -> via -> to.
func (s *Styles) GradientRule(width int) string {
	if width <= 0 {
		return ""
	}
	stops := GradientStops(s.Tokens, width)
	var b strings.Builder
	for _, hex := range stops {
		b.WriteString(s.renderer.NewStyle().Foreground(lipgloss.Color(hex)).Render("━"))
	}
	return b.String()
}

// GradientStops returns width hex colors interpolated across the three
// gradient tokens.
func GradientStops(t *Tokens, width int) []string {
	if width <= 0 {
		return nil
	}
	from := mustHex(t.GradientFrom)
	via := mustHex(t.GradientVia)
	to := mustHex(t.GradientTo)

	out := make([]string, width)
	if width == 1 {
		out[0] = from.Hex()
		return out
	}
	out[0], out[width-1] = from.Hex(), to.Hex()
	for i := 1; i < width-1; i++ {
		pos := float64(i) / float64(width-1)
		var col colorful.Color
		if pos <= 0.5 {
			col = from.BlendLab(via, pos*2)
		} else {
			col = via.BlendLab(to, (pos-0.5)*2)
		}
		out[i] = col.Clamped().Hex()
	}
	return out
}

func mustHex(hex string) colorful.Color {
	col, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return col
}
