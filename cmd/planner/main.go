package main

import (
	"fmt"
	"os"

	"github.com/white3332/ai-planner/internal/api"
	"github.com/white3332/ai-planner/internal/cli"
	"github.com/white3332/ai-planner/internal/config"
	"github.com/white3332/ai-planner/internal/logger"
	"github.com/white3332/ai-planner/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir}); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	sessions := session.NewKeyringStore(cfg.Dir)

	// Request logging goes to stderr only in debug mode; the TUI owns
	// the terminal otherwise.
	var observer api.Observer = api.NoopObserver{}
	if cfg.Debug {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.NewClient(cfg.BackendURL, cfg.TimeoutMs, sessions, observer)

	app := &cli.App{
		Plans:    client,
		Auth:     client,
		Stats:    client,
		Sessions: sessions,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
