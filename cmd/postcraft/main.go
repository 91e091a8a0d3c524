package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sant0-9/postcraft/internal/agent"
	"github.com/sant0-9/postcraft/internal/config"
	"github.com/sant0-9/postcraft/internal/content"
	"github.com/sant0-9/postcraft/internal/history"
	"github.com/sant0-9/postcraft/internal/llm"
	"github.com/sant0-9/postcraft/internal/logging"
	"github.com/sant0-9/postcraft/internal/search"
	"github.com/sant0-9/postcraft/internal/tui"
)

var version = "dev"

func main() {
	// keys may come from the environment instead
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "postcraft",
		Usage:   "write Instagram posts about wine and food from plain-language instructions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file (default ~/.config/postcraft/config.yaml)"},
			&cli.StringFlag{Name: "output-dir", Usage: "directory for post.txt and the content history"},
			&cli.BoolFlag{Name: "verbose", Usage: "log debug messages"},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			parseCommand(),
			generateCommand(),
			topicCommand(),
			historyCommand(),
		},
	}
}

// loadConfig reads the config file and applies the environment and flag
// overrides. found is false when no config file exists.
func loadConfig(c *cli.Context) (*config.Config, bool, error) {
	cfg, found, err := config.LoadOrDefault(c.String("config"))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	if dir := c.String("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	return cfg, found, nil
}

// buildGenerator wires provider, search, history and team. The returned
// closer releases the history log.
func buildGenerator(cfg *config.Config, logger *slog.Logger) (*content.Generator, io.Closer, error) {
	provider, err := llm.NewProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	searcher, err := search.New(cfg.Search)
	if err != nil {
		return nil, nil, err
	}

	log, err := history.Open(cfg.History, cfg.OutputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}

	team := agent.NewInstagramTeam(cfg, provider, searcher, logger)
	return content.NewGenerator(team, log, cfg.OutputDir, logger), log, nil
}

func runTUI(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q, see --help", c.Args().First())
	}

	cfg, found, err := loadConfig(c)
	if err != nil {
		return err
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	logger, logFile, err := logging.OpenFile(dir, c.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	// every reconnect builds a new backend, close them all on exit
	var (
		mu      sync.Mutex
		closers []io.Closer
	)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, cl := range closers {
			if err := cl.Close(); err != nil {
				logger.Warn("failed to close history", "error", err)
			}
		}
	}()

	newBackend := func(cfg *config.Config) (tui.Backend, error) {
		gen, closer, err := buildGenerator(cfg, logger)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		closers = append(closers, closer)
		mu.Unlock()
		return gen, nil
	}

	app := tui.NewApp(tui.Options{
		Config:     cfg,
		NeedsSetup: !found && cfg.Validate() != nil,
		NewBackend: newBackend,
		Logger:     logger,
	})

	logger.Info("starting", "version", version, "provider", cfg.Provider, "output_dir", cfg.OutputDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
