package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/appearance"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/themectx"
)

var tokensOpts struct {
	mode string
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect or change the stored theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the theme the page would open with, and why",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPrefs(func(store prefs.Store) error {
			mode, source := themectx.Resolve(environment(store), logger)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", mode, source)
			return err
		})
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set <light|dark>",
	Short:     "Store a theme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{theme.Light.String(), theme.Dark.String()},
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := theme.ModeFromString(args[0])
		if err != nil {
			return err
		}
		return withPrefs(func(store prefs.Store) error {
			if err := store.Set(prefs.ThemeKey, mode.String()); err != nil {
				return fmt.Errorf("failed to save theme: %w", err)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mode)
			return err
		})
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the theme the page would open with and store the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPrefs(func(store prefs.Store) error {
			mode := themectx.NewStore(environment(store), themectx.WithLogger(logger)).Toggle()
			_, err := fmt.Fprintln(cmd.OutOrStdout(), mode)
			return err
		})
	},
}

var themeTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the style tokens of a theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := theme.Light
		if tokensOpts.mode != "" {
			var err error
			if mode, err = theme.ModeFromString(tokensOpts.mode); err != nil {
				return err
			}
		}
		return printTokens(cmd.OutOrStdout(), theme.TokensFor(mode))
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.AddCommand(themeGetCmd, themeSetCmd, themeToggleCmd, themeTokensCmd)

	themeTokensCmd.Flags().StringVar(&tokensOpts.mode, "mode", "",
		"Theme to list (light, dark; default light)")
}

func withPrefs(fn func(prefs.Store) error) error {
	store, closePrefs, err := openPrefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	defer func() {
		if err := closePrefs(); err != nil {
			logger.Warn("closing preferences", "err", err)
		}
	}()
	return fn(store)
}

func environment(store prefs.Store) *themectx.Environment {
	return &themectx.Environment{Prefs: store, System: appearance.Default(lipgloss.NewRenderer(os.Stdout))}
}

// printTokens renders a table of token names, values and color swatches.
func printTokens(w io.Writer, t *theme.Tokens) error {
	r := lipgloss.NewRenderer(w)
	attrs := t.Attributes()
	rows := make([][]string, 0, len(attrs))
	for _, a := range attrs {
		swatch := ""
		if strings.HasPrefix(a.Value, "#") {
			swatch = "   "
		}
		rows = append(rows, []string{a.Name, a.Value, swatch})
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("TOKEN", "VALUE", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := r.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Bold(true)
			case col == 2 && row >= 0 && row < len(attrs) && strings.HasPrefix(attrs[row].Value, "#"):
				return s.Background(lipgloss.Color(attrs[row].Value))
			}
			return s
		})
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
