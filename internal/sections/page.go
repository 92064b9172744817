// Package sections renders the landing page. Every section reads the theme
// from the render frame and holds no theme state of its own.
package sections

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/themectx"
)

const (
	// MobileBreakpoint is the width below which the navbar collapses into
	// the menu button.
	MobileBreakpoint = 80

	// DefaultWidth is used when the terminal has not reported a size yet.
	DefaultWidth = 80

	maxContentWidth = 110
	cardGap         = 2
)

// SiteSource yields the content to render. content.Holder satisfies it.
type SiteSource interface {
	Site() *content.Site
}

type staticSource struct{ site *content.Site }

func (s staticSource) Site() *content.Site { return s.site }

// Static wraps a fixed Site as a SiteSource.
func Static(site *content.Site) SiteSource { return staticSource{site: site} }

// Layout is one rendered page body. FocusLine is the body line of the
// focused in-page link, -1 when none is focused.
type Layout struct {
	Body      string
	Height    int
	Anchors   map[content.Anchor]int
	FocusLine int
}

// Line returns the first body line of anchor.
func (l Layout) Line(a content.Anchor) (int, bool) {
	n, ok := l.Anchors[a]
	return n, ok
}

// Page renders the sections for one lipgloss renderer.
type Page struct {
	renderer *lipgloss.Renderer
	source   SiteSource

	mu     sync.Mutex
	styles map[*theme.Tokens]*theme.Styles
}

// NewPage builds a page. A nil renderer uses the lipgloss default; a nil
// source renders the embedded content.
func NewPage(r *lipgloss.Renderer, source SiteSource) *Page {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	if source == nil {
		source = Static(content.Default())
	}
	return &Page{renderer: r, source: source, styles: map[*theme.Tokens]*theme.Styles{}}
}

func (p *Page) Site() *content.Site { return p.source.Site() }

func (p *Page) Renderer() *lipgloss.Renderer { return p.renderer }

// Styles returns the style sheet for the frame's tokens. It panics outside
// a provider frame.
func (p *Page) Styles(ctx context.Context) *theme.Styles {
	active := themectx.MustUse(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	st, ok := p.styles[active.Tokens]
	if !ok {
		st = theme.NewStyles(p.renderer, active.Tokens)
		p.styles[active.Tokens] = st
	}
	return st
}

// FocusMarker prefixes the label of the focused in-page link.
const FocusMarker = "▸"

// NoFocus renders every in-page link unfocused.
const NoFocus = -1

// InPageLinks lists the links inside the body, in page order: the hero call
// to action, each service button, then the contact quick links. Indexes
// into this slice are the focus values Render accepts.
func (p *Page) InPageLinks() []content.Link {
	site := p.Site()
	links := make([]content.Link, 0, 1+len(site.Services.Items)+len(site.Contact.QuickLinks))
	links = append(links, site.Hero.PrimaryCTA)
	for _, item := range site.Services.Items {
		links = append(links, item.Button)
	}
	return append(links, site.Contact.QuickLinks...)
}

// frame carries what a section needs to draw itself.
type frame struct {
	st    *theme.Styles
	site  *content.Site
	width int
	focus int
}

// linkLabel returns label, marked when the link at index idx has focus.
func (f frame) linkLabel(idx int, label string) string {
	if idx == f.focus {
		return FocusMarker + " " + label
	}
	return label
}

const heroLink = 0

func serviceLink(i int) int { return 1 + i }

func quickLink(site *content.Site, i int) int { return 1 + len(site.Services.Items) + i }

type block struct {
	anchor content.Anchor
	render func(f frame) string
}

var blocks = []block{
	{anchor: content.AnchorHero, render: renderHero},
	{anchor: content.AnchorAbout, render: linkless(renderAbout)},
	{anchor: content.AnchorServices, render: renderServices},
	{anchor: content.AnchorTestimonials, render: linkless(renderTestimonials)},
	{anchor: content.AnchorContact, render: renderContact},
}

// linkless adapts a section that holds no in-page links.
func linkless(render func(st *theme.Styles, site *content.Site, width int) string) func(frame) string {
	return func(f frame) string { return render(f.st, f.site, f.width) }
}

// Render joins every section below the navbar and records where each
// anchor starts. One blank line separates sections.
func (p *Page) Render(ctx context.Context, width int) Layout {
	return p.RenderFocused(ctx, width, NoFocus)
}

// RenderFocused is Render with the in-page link at index focus marked.
func (p *Page) RenderFocused(ctx context.Context, width, focus int) Layout {
	st := p.Styles(ctx)
	site := p.Site()
	if width <= 0 {
		width = DefaultWidth
	}
	f := frame{st: st, site: site, width: ContentWidth(width), focus: focus}

	layout := Layout{Anchors: make(map[content.Anchor]int, len(blocks)), FocusLine: -1}
	var b strings.Builder
	line := 0
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n\n")
			line++
		}
		layout.Anchors[blk.anchor] = line
		out := lipgloss.PlaceHorizontal(width, lipgloss.Center, blk.render(f))
		b.WriteString(out)
		line += lipgloss.Height(out)
	}
	layout.Body = b.String()
	layout.Height = line
	if focus >= 0 {
		layout.FocusLine = markerLine(layout.Body)
	}
	return layout
}

func markerLine(body string) int {
	for i, l := range strings.Split(ansi.Strip(body), "\n") {
		if strings.Contains(l, FocusMarker) {
			return i
		}
	}
	return -1
}

// ContentWidth is the usable column count for a terminal width.
func ContentWidth(width int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	inner := width - 4
	if width < MobileBreakpoint {
		inner = width - 2
	}
	if inner > maxContentWidth {
		inner = maxContentWidth
	}
	if inner < 20 {
		inner = max(width, 1)
	}
	return inner
}

// IsMobile reports whether width uses the collapsed navbar.
func IsMobile(width int) bool { return width > 0 && width < MobileBreakpoint }

func wrap(style lipgloss.Style, width int, text string) string {
	return style.Width(width).Render(text)
}

func centered(style lipgloss.Style, width int, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// columns picks how many cells of at least minCell fit in width.
func columns(width, minCell, n int) (cols, cell int) {
	if n <= 0 {
		return 0, width
	}
	cols = (width + cardGap) / (minCell + cardGap)
	cols = max(1, min(cols, n))
	cell = (width - (cols-1)*cardGap) / cols
	return cols, cell
}

// grid lays cells out in rows of cols, top aligned.
func grid(cells []string, cols int) string {
	if len(cells) == 0 {
		return ""
	}
	gap := strings.Repeat(" ", cardGap)
	rows := make([]string, 0, (len(cells)+cols-1)/cols)
	for i := 0; i < len(cells); i += cols {
		end := min(i+cols, len(cells))
		row := make([]string, 0, 2*(end-i))
		for j := i; j < end; j++ {
			if j > i {
				row = append(row, gap)
			}
			row = append(row, cells[j])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// flow joins parts on one line when they fit, otherwise stacks them.
func flow(width int, parts ...string) string {
	total := 0
	for i, p := range parts {
		if i > 0 {
			total += cardGap
		}
		total += lipgloss.Width(p)
	}
	if total <= width {
		gap := strings.Repeat(" ", cardGap)
		joined := make([]string, 0, 2*len(parts))
		for i, p := range parts {
			if i > 0 {
				joined = append(joined, gap)
			}
			joined = append(joined, p)
		}
		return lipgloss.JoinHorizontal(lipgloss.Center, joined...)
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func card(st *theme.Styles, width int, body string) string {
	return st.Card.Width(width - st.Card.GetHorizontalBorderSize()).Render(body)
}

// cardInner is the text width inside a card of the given outer width.
func cardInner(st *theme.Styles, width int) int {
	return max(width-st.Card.GetHorizontalFrameSize(), 1)
}

func sectionHeader(st *theme.Styles, width int, title, intro string) string {
	parts := []string{centered(st.Heading, width, title)}
	parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Center, st.GradientRule(min(24, width))))
	if intro != "" {
		parts = append(parts, "", centered(st.Lead, width, intro))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
