package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/sections"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/themectx"
)

type renderOptions struct {
	width int
	mode  string
	plain bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the page once to stdout",
	Long: `Render the whole page once, the way it looks before any preference or
terminal is consulted: light unless --mode says otherwise.

Examples:
  # Save a plain-text copy
  portfolio render --plain > page.txt

  # Preview the dark theme at a phone-like width
  portfolio render --mode dark --width 60`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := renderOpts
		if opts.width <= 0 {
			opts.width = sections.DefaultWidth
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				opts.width = w
			}
		}
		return renderPage(cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().IntVarP(&renderOpts.width, "width", "w", 0,
		"Columns to render at (default: terminal width, else 80)")
	renderCmd.Flags().StringVar(&renderOpts.mode, "mode", "",
		"Theme to render with (light, dark)")
	renderCmd.Flags().BoolVar(&renderOpts.plain, "plain", false,
		"Strip colors and styling")
}

// renderPage writes the navbar and every section. No environment is
// available here, so the store starts light and nothing is persisted.
func renderPage(w io.Writer, opts renderOptions) error {
	site, err := content.Load(cfg.Content.Path)
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	store := themectx.NewStore(nil, themectx.WithLogger(logger))
	if opts.mode != "" {
		mode, err := theme.ModeFromString(opts.mode)
		if err != nil {
			return err
		}
		if mode != store.Mode() {
			store.Toggle()
		}
	}

	page := sections.NewPage(lipgloss.NewRenderer(w), sections.Static(site))
	ctx := themectx.NewProvider(store).Frame(context.Background())
	out := page.Styles(ctx).Page.Render(lipgloss.JoinVertical(lipgloss.Left,
		page.Navbar(ctx, opts.width, sections.NavState{}),
		page.Render(ctx, opts.width).Body,
	))
	if opts.plain {
		out = ansi.Strip(out)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
