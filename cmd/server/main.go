// Command server is the container entrypoint: configuration comes from
// PORTFOLIO_* variables and an optional PORTFOLIO_CONFIG file.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/server"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal("load config", "err", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: os.Stderr})
	if err != nil {
		log.Fatal("build logger", "err", err)
	}

	if err := server.Serve(context.Background(), cfg, logger); err != nil {
		logger.Fatal("run ssh server", "err", err)
	}
}
