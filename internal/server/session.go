package server

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/recover"

	"portfolio-terminal/internal/appearance"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/sections"
	"portfolio-terminal/internal/themectx"
	"portfolio-terminal/internal/tui"
)

// SessionDescriptor is the innermost link of the chain: it runs the page
// program for the session, recovering panics so one visitor cannot take
// the listener down.
func SessionDescriptor(deps Deps) router.Descriptor {
	logger := logging.OrDiscard(deps.Logger)
	return router.Descriptor{
		Name:       "tui",
		Middleware: recover.MiddlewareWithLogger(logger, bubbletea.Middleware(TeaHandler(deps))),
	}
}

// TeaHandler builds a fresh model per session.
func TeaHandler(deps Deps) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		return NewSessionModel(s, deps), []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	}
}

// NewSessionModel gives the session its own theme store over the visitor's
// scoped preferences and terminal.
func NewSessionModel(s ssh.Session, deps Deps) tui.Model {
	id, ok := router.IdentityFrom(s.Context())
	if !ok {
		id = router.IdentityOf(s)
	}
	logger := logging.OrDiscard(deps.Logger).With("session", s.Context().SessionID(), "scope", id.Scope)

	renderer := bubbletea.MakeRenderer(s)
	lookup := sessionEnv(s.Environ())
	system := appearance.NewChain(
		appearance.EnvDetector{Lookup: lookup},
		appearance.ColorFGBGDetector{Lookup: lookup},
		appearance.RendererDetector{Renderer: renderer},
	)

	env := &themectx.Environment{System: system}
	if deps.Prefs != nil {
		env.Prefs = prefs.Scoped(deps.Prefs, id.Scope)
	}
	store := themectx.NewStore(env,
		themectx.WithMarker(appearance.TerminalMarker{Renderer: renderer}),
		themectx.WithLogger(logger),
	)
	logger.Info("session started", "event", "session_started", "user", id.Username, "remote_ip", id.RemoteIP, "mode", store.Mode(), "source", store.Source())

	pty, _, _ := s.Pty()
	return tui.NewModel(
		themectx.NewProvider(store),
		sections.NewPage(renderer, deps.Content),
		tui.Options{Width: pty.Window.Width, Height: pty.Window.Height, Logger: logger},
	)
}

// sessionEnv looks variables up in the environment the client sent, not
// the server process.
func sessionEnv(environ []string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		for i := len(environ) - 1; i >= 0; i-- {
			k, v, ok := strings.Cut(environ[i], "=")
			if ok && k == key {
				return v, true
			}
		}
		return "", false
	}
}
