// Package tui is the bubbletea root of the page: a sticky navbar above a
// scrolling viewport, the theme toggle control, and smooth in-page
// navigation.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/sections"
	"portfolio-terminal/internal/themectx"
)

// Options configures a Model.
type Options struct {
	// Width and Height seed the layout before the first WindowSizeMsg.
	Width  int
	Height int
	Logger *log.Logger
}

// Model is the page root. It owns the only Provider of its view tree.
type Model struct {
	provider *themectx.Provider
	page     *sections.Page
	logger   *log.Logger

	keys     KeyMap
	help     help.Model
	viewport viewport.Model

	width    int
	height   int
	menuOpen bool
	// focus indexes page.InPageLinks, sections.NoFocus when none.
	focus int

	layout        sections.Layout
	layoutVersion uint64
	layoutWidth   int
	layoutSite    *content.Site
	layoutFocus   int
	laidOut       bool

	scroll *scroll
	nextID int
}

// NewModel constructs the page model.
func NewModel(provider *themectx.Provider, page *sections.Page, opts Options) Model {
	m := Model{
		provider: provider,
		page:     page,
		logger:   logging.OrDiscard(opts.Logger),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(0, 0),
		focus:    sections.NoFocus,
	}
	m.help.Styles = helpStyles(page.Renderer())
	m.viewport.MouseWheelEnabled = true
	if opts.Width > 0 && opts.Height > 0 {
		m.resize(opts.Width, opts.Height)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	b := m.page.Site().Brand
	return tea.SetWindowTitle(b.Primary + b.Secondary)
}

// Update advances model state in response to events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.cancelScroll()
		m.viewport, cmd = m.viewport.Update(msg)
	case scrollFrameMsg:
		cmd = m.advanceScroll(msg)
	}
	m.sync()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Toggle):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Menu):
		if sections.IsMobile(m.width) {
			m.menuOpen = !m.menuOpen
		}
	case key.Matches(msg, m.keys.Close):
		m.menuOpen = false
		m.focus = sections.NoFocus
	case key.Matches(msg, m.keys.Links):
		return m.navigate(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Follow):
		return m.follow()
	case key.Matches(msg, m.keys.Up):
		m.cancelScroll()
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		m.cancelScroll()
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.cancelScroll()
		m.viewport.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.cancelScroll()
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.cancelScroll()
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.End):
		m.cancelScroll()
		m.viewport.GotoBottom()
	}
	return nil
}

// toggleTheme goes through the distributed toggle, exactly as any other
// consumer of the frame would.
func (m *Model) toggleTheme() {
	active := themectx.MustUse(m.provider.Frame(context.Background()))
	mode := active.Toggle()
	m.logger.Debug("theme toggled", "event", "theme_toggled", "mode", mode)
}

// navigate activates the idx-th link target and closes the mobile menu.
func (m *Model) navigate(idx int) tea.Cmd {
	targets := m.page.Targets(m.width)
	if idx < 0 || idx >= len(targets) {
		return nil
	}
	if m.menuOpen {
		m.menuOpen = false
		m.sync()
	}
	return m.scrollTo(targets[idx])
}

// moveFocus cycles the focused in-page link and brings it into view.
func (m *Model) moveFocus(delta int) {
	n := len(m.page.InPageLinks())
	if n == 0 {
		return
	}
	switch {
	case m.focus == sections.NoFocus && delta < 0:
		m.focus = n - 1
	case m.focus == sections.NoFocus:
		m.focus = 0
	default:
		m.focus = ((m.focus+delta)%n + n) % n
	}
	m.cancelScroll()
	m.sync()
	if line := m.layout.FocusLine; line >= 0 {
		top := m.viewport.YOffset
		switch {
		case line < top:
			m.viewport.SetYOffset(line)
		case line >= top+m.viewport.Height:
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
}

// follow scrolls to the focused in-page link's anchor.
func (m *Model) follow() tea.Cmd {
	links := m.page.InPageLinks()
	if m.focus < 0 || m.focus >= len(links) {
		return nil
	}
	return m.scrollTo(links[m.focus])
}

func (m *Model) scrollTo(link content.Link) tea.Cmd {
	line, ok := m.layout.Line(link.Anchor)
	if !ok {
		return nil
	}
	target := min(max(line+link.Offset, 0), m.maxOffset())
	from := m.viewport.YOffset
	m.nextID++
	d := m.page.Site().Nav.ScrollDuration
	if target == from || d <= 0 {
		m.scroll = nil
		m.viewport.SetYOffset(target)
		return nil
	}
	m.scroll = newScroll(m.nextID, from, target, d)
	m.logger.Debug("scrolling to anchor", "event", "scroll_start", "anchor", link.Anchor, "from", from, "to", target)
	return m.scroll.tick()
}

func (m *Model) advanceScroll(msg scrollFrameMsg) tea.Cmd {
	if m.scroll == nil || msg.id != m.scroll.id {
		return nil
	}
	offset, done := m.scroll.step()
	m.viewport.SetYOffset(offset)
	if done {
		m.scroll = nil
		return nil
	}
	return m.scroll.tick()
}

func (m *Model) cancelScroll() { m.scroll = nil }

func (m *Model) maxOffset() int {
	return max(m.viewport.TotalLineCount()-m.viewport.Height, 0)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	if !sections.IsMobile(width) {
		m.menuOpen = false
	}
	m.sync()
}

func (m Model) navState() sections.NavState {
	return sections.NavState{MenuOpen: m.menuOpen && sections.IsMobile(m.width)}
}

// sync sizes the viewport around the navbar and help bar and re-renders the
// body when the theme version, width or content changed.
func (m *Model) sync() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	ctx := m.provider.Frame(context.Background())
	active := themectx.MustUse(ctx)

	navHeight := lipgloss.Height(m.page.Navbar(ctx, m.width, m.navState()))
	m.help.Width = m.width
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-navHeight-helpHeight, 1)

	site := m.page.Site()
	if site != m.layoutSite && m.focus >= len(m.page.InPageLinks()) {
		m.focus = sections.NoFocus
	}
	if !m.laidOut || active.Version != m.layoutVersion || m.width != m.layoutWidth || site != m.layoutSite || m.focus != m.layoutFocus {
		m.layout = m.page.RenderFocused(ctx, m.width, m.focus)
		m.layoutVersion, m.layoutWidth, m.layoutSite, m.layoutFocus, m.laidOut = active.Version, m.width, site, m.focus, true
		m.viewport.SetContent(m.layout.Body)
	}
	m.viewport.SetYOffset(m.viewport.YOffset)
}

// View renders navbar, page body and help from a single frame.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	ctx := m.provider.Frame(context.Background())
	active := themectx.MustUse(ctx)

	vp := m.viewport
	if !m.laidOut || active.Version != m.layoutVersion || m.page.Site() != m.layoutSite || m.focus != m.layoutFocus {
		vp.SetContent(m.page.RenderFocused(ctx, m.width, m.focus).Body)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.page.Navbar(ctx, m.width, m.navState()),
		vp.View(),
		m.help.View(m.keys),
	)
	return m.page.Styles(ctx).Page.Render(view)
}

// YOffset is the first visible body line.
func (m Model) YOffset() int { return m.viewport.YOffset }

// Focus is the index of the focused in-page link, sections.NoFocus when
// none is focused.
func (m Model) Focus() int { return m.focus }

// MenuOpen reports whether the mobile menu is showing.
func (m Model) MenuOpen() bool { return m.menuOpen }

// Scrolling reports whether a smooth scroll is in flight.
func (m Model) Scrolling() bool { return m.scroll != nil }

// Layout is the body layout currently loaded in the viewport.
func (m Model) Layout() sections.Layout { return m.layout }

// ViewportHeight is the number of body lines visible at once.
func (m Model) ViewportHeight() int { return m.viewport.Height }

func helpStyles(r *lipgloss.Renderer) help.Styles {
	keyStyle := r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#C4B5FD"})
	descStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	sepStyle := r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
	return help.Styles{
		Ellipsis:       sepStyle,
		ShortKey:       keyStyle,
		ShortDesc:      descStyle,
		ShortSeparator: sepStyle,
		FullKey:        keyStyle,
		FullDesc:       descStyle,
		FullSeparator:  sepStyle,
	}
}
