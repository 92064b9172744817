package sections

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-terminal/internal/appearance"
	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/themectx"
)

func newTestPage(t *testing.T, dark bool) (*Page, *themectx.Provider) {
	t.Helper()
	store := themectx.NewStore(&themectx.Environment{Prefs: prefs.NewMemoryStore(), System: appearance.Static(dark)})
	return NewPage(lipgloss.NewRenderer(io.Discard), nil), themectx.NewProvider(store)
}

func lines(s string) []string { return strings.Split(ansi.Strip(s), "\n") }

func TestRenderOutsideProviderPanics(t *testing.T) {
	page := NewPage(lipgloss.NewRenderer(io.Discard), nil)
	assert.PanicsWithValue(t, themectx.ErrNoProvider, func() { page.Render(context.Background(), 80) })
	assert.PanicsWithValue(t, themectx.ErrNoProvider, func() { page.Navbar(context.Background(), 80, NavState{}) })
}

func TestRenderRecordsAnchorsInPageOrder(t *testing.T) {
	for _, width := range []int{120, 80, 60} {
		page, provider := newTestPage(t, false)
		layout := page.Render(provider.Frame(context.Background()), width)
		body := lines(layout.Body)
		require.Len(t, body, layout.Height)

		prev := -1
		for _, a := range content.Anchors {
			n, ok := layout.Line(a)
			require.True(t, ok, "anchor %s at width %d", a, width)
			assert.Greater(t, n, prev, "anchor %s at width %d", a, width)
			prev = n
		}

		site := page.Site()
		assert.Contains(t, body[layout.Anchors[content.AnchorHero]], site.Hero.Badge)
		assert.Contains(t, body[layout.Anchors[content.AnchorAbout]], site.About.Title)
		assert.Contains(t, body[layout.Anchors[content.AnchorServices]], site.Services.Title)
		assert.Contains(t, body[layout.Anchors[content.AnchorTestimonials]], site.Testimonials.Title)
		assert.Contains(t, body[layout.Anchors[content.AnchorContact]], site.Contact.Title)
	}
}

func TestRenderIncludesEverySection(t *testing.T) {
	page, provider := newTestPage(t, true)
	body := ansi.Strip(page.Render(provider.Frame(context.Background()), 120).Body)
	site := page.Site()

	for _, want := range []string{
		site.About.Steps[0].Title,
		site.About.Featured[0].Stats,
		site.About.WhyTitle,
		site.Services.Items[2].Title,
		site.Services.Items[0].Features[0],
		site.Testimonials.Items[1].Name,
		site.Contact.Email,
		site.Contact.Phone,
		site.Brand.Copyright,
		"★★★★★",
	} {
		assert.Contains(t, body, want)
	}
}

func TestRenderFitsWidth(t *testing.T) {
	for _, width := range []int{120, 80, 60} {
		page, provider := newTestPage(t, false)
		ctx := provider.Frame(context.Background())
		for i, line := range strings.Split(page.Render(ctx, width).Body, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), width, "width %d line %d", width, i)
		}
	}
}

func TestStylesCachedPerTokenTable(t *testing.T) {
	page, provider := newTestPage(t, false)
	light := page.Styles(provider.Frame(context.Background()))
	assert.Same(t, light, page.Styles(provider.Frame(context.Background())))
	assert.Same(t, theme.LightTokens(), light.Tokens)

	provider.Store().Toggle()
	dark := page.Styles(provider.Frame(context.Background()))
	assert.NotSame(t, light, dark)
	assert.Same(t, theme.DarkTokens(), dark.Tokens)
}

func TestNavbarDesktopAndMobile(t *testing.T) {
	page, provider := newTestPage(t, false)
	ctx := provider.Frame(context.Background())

	desktop := ansi.Strip(page.Navbar(ctx, 120, NavState{}))
	assert.Contains(t, desktop, "The Social Ayushi")
	assert.Contains(t, desktop, "3 Services")
	assert.Contains(t, desktop, "4 Work With Me")
	assert.Contains(t, desktop, "☾")

	closed := ansi.Strip(page.Navbar(ctx, 60, NavState{}))
	assert.Contains(t, closed, "☰")
	assert.NotContains(t, closed, "Services")

	open := ansi.Strip(page.Navbar(ctx, 60, NavState{MenuOpen: true}))
	assert.Contains(t, open, "✕")
	assert.Contains(t, open, "3  Services")
	assert.Contains(t, open, "4  Work With Me")

	assert.Equal(t, desktop, ansi.Strip(page.Navbar(ctx, 120, NavState{MenuOpen: true})), "menu state is ignored on wide terminals")
}

func TestNavbarGlyphFollowsFrame(t *testing.T) {
	page, provider := newTestPage(t, true)
	ctx := provider.Frame(context.Background())
	assert.Contains(t, ansi.Strip(page.Navbar(ctx, 100, NavState{})), "☀")

	provider.Store().Toggle()
	assert.Contains(t, ansi.Strip(page.Navbar(ctx, 100, NavState{})), "☀", "frame keeps its snapshot")
	assert.Contains(t, ansi.Strip(page.Navbar(provider.Frame(context.Background()), 100, NavState{})), "☾")
}

func TestTargetsUseBreakpointOffsets(t *testing.T) {
	page, _ := newTestPage(t, false)
	site := page.Site()

	desktop := page.Targets(120)
	require.Len(t, desktop, len(site.Nav.Links)+1)
	assert.Equal(t, site.Nav.CTA, desktop[len(desktop)-1])
	assert.Equal(t, 1, desktop[0].Offset)

	mobile := page.Targets(60)
	require.Len(t, mobile, len(site.Nav.MobileLinks)+1)
	assert.Equal(t, -1, mobile[0].Offset)
	assert.Equal(t, site.Nav.MobileCTA, mobile[len(mobile)-1])
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Stars(3))
	assert.Equal(t, "☆☆☆☆☆", Stars(-2))
	assert.Equal(t, "★★★★★", Stars(9))

	assert.Equal(t, 10, lipgloss.Width(motionStrip("ab ", 10)))
	assert.Empty(t, motionStrip("", 10))

	cols, cell := columns(100, 30, 3)
	assert.Equal(t, 3, cols)
	assert.LessOrEqual(t, cols*cell+(cols-1)*cardGap, 100)
	cols, _ = columns(40, 30, 3)
	assert.Equal(t, 1, cols)

	assert.True(t, IsMobile(79))
	assert.False(t, IsMobile(80))
	assert.False(t, IsMobile(0))
	assert.Equal(t, 110, ContentWidth(200))
}

func TestInPageLinksInPageOrder(t *testing.T) {
	page, _ := newTestPage(t, false)
	site := page.Site()
	links := page.InPageLinks()

	require.Len(t, links, 1+len(site.Services.Items)+len(site.Contact.QuickLinks))
	assert.Equal(t, site.Hero.PrimaryCTA, links[0])
	assert.Equal(t, site.Services.Items[1].Button, links[2])
	assert.Equal(t, site.Contact.QuickLinks, links[1+len(site.Services.Items):])
}

func TestRenderFocusedMarksOneLink(t *testing.T) {
	page, provider := newTestPage(t, false)
	ctx := provider.Frame(context.Background())
	site := page.Site()

	plain := page.Render(ctx, 120)
	assert.Equal(t, -1, plain.FocusLine)
	assert.NotContains(t, ansi.Strip(plain.Body), FocusMarker)

	sectionOf := func(i int) content.Anchor {
		switch {
		case i == 0:
			return content.AnchorHero
		case i <= len(site.Services.Items):
			return content.AnchorServices
		default:
			return content.AnchorContact
		}
	}

	for i, link := range page.InPageLinks() {
		layout := page.RenderFocused(ctx, 120, i)
		body := lines(layout.Body)
		require.GreaterOrEqual(t, layout.FocusLine, 0, "link %d", i)
		assert.Equal(t, 1, strings.Count(ansi.Strip(layout.Body), FocusMarker), "link %d", i)
		assert.Contains(t, body[layout.FocusLine], FocusMarker+" "+strings.Fields(link.Label)[0], "link %d", i)

		start, _ := layout.Line(sectionOf(i))
		assert.GreaterOrEqual(t, layout.FocusLine, start, "link %d", i)
		assert.Equal(t, plain.Anchors, layout.Anchors, "focus must not move anchors")
	}
}
