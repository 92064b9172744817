package main

import (
	"github.com/spf13/cobra"

	"portfolio-terminal/internal/server"
)

var serveOpts struct {
	host string
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page over SSH",
	Long: `Serve the page to SSH visitors. Each visitor gets their own theme, stored
per public key (or username) in the preference backend, sqlite by default.

Examples:
  portfolio serve --port 2222
  ssh -p 2222 localhost`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("host") {
			cfg.SSH.Host = serveOpts.host
		}
		if cmd.Flags().Changed("port") {
			cfg.SSH.Port = serveOpts.port
		}
		return server.Serve(cmd.Context(), cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveOpts.host, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVarP(&serveOpts.port, "port", "p", 0, "Listen port (overrides config)")
}
