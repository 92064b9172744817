package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"portfolio-terminal/internal/appearance"
	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/sections"
	"portfolio-terminal/internal/themectx"
	"portfolio-terminal/internal/tui"
)

// runTUI opens the interactive page. Without a terminal on both ends there
// is no environment to query, so the page is rendered once instead.
func runTUI(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		logger.Debug("no terminal attached, rendering once", "event", "tui_fallback_render")
		return renderPage(cmd.OutOrStdout(), renderOptions{width: sections.DefaultWidth})
	}

	store, closePrefs, err := openPrefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer func() {
		if err := closePrefs(); err != nil {
			logger.Warn("closing preferences", "err", err)
		}
	}()

	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}
	holder := content.NewHolder(site)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if cfg.Content.Watch && cfg.Content.Path != "" {
		if err := holder.Watch(ctx, cfg.Content.Path, logger); err != nil {
			return err
		}
	}

	renderer := lipgloss.DefaultRenderer()
	themeStore := themectx.NewStore(
		&themectx.Environment{Prefs: store, System: appearance.Default(renderer)},
		themectx.WithMarker(appearance.TerminalMarker{Renderer: renderer}),
		themectx.WithLogger(logger),
	)

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 0, 0
	}
	model := tui.NewModel(
		themectx.NewProvider(themeStore),
		sections.NewPage(renderer, holder),
		tui.Options{Width: width, Height: height, Logger: logger},
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
