package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
)

// Build-time variables (set via ldflags)
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfg        config.Config
	logger     *log.Logger
	logFile    *os.File
	globalOpts struct {
		configPath string
		prefsPath  string
		logFile    string
		verbose    bool
	}
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "A portfolio landing page for the terminal",
	Long: `portfolio renders a single-page portfolio site in the terminal.

Running portfolio without a subcommand opens the interactive page. Press t to
switch between light and dark themes; the choice is remembered.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if globalOpts.prefsPath != "" {
			cfg.Prefs.Path = globalOpts.prefsPath
		}
		if globalOpts.verbose {
			cfg.Log.Level = "debug"
		}
		return setupLogger(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
	RunE: runTUI,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "portfolio:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/portfolio-terminal/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.prefsPath, "prefs", "",
		"Path to the preference store (default depends on the backend)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Write logs to this file (the interactive page logs nowhere otherwise)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable debug logging")
}

// setupLogger sends logs to --log-file, else to stderr for everything but
// the interactive page, which owns the screen.
func setupLogger(cmd *cobra.Command) error {
	var w io.Writer = cmd.ErrOrStderr()
	switch {
	case globalOpts.logFile != "":
		f, err := os.OpenFile(globalOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile, w = f, f
	case cmd == cmd.Root():
		w = io.Discard
	}

	var err error
	logger, err = logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: w})
	return err
}

// openPrefs opens the configured backend, defaulting to the JSON file.
func openPrefs() (prefs.Store, func() error, error) {
	backend := cfg.Prefs.Backend
	if backend == "" {
		backend = prefs.BackendFile
	}
	return prefs.Open(backend, cfg.Prefs.Path)
}
