package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/flick/internal/catalog"
	"github.com/mmcdole/flick/internal/config"
	"github.com/mmcdole/flick/internal/domain"
	"github.com/mmcdole/flick/internal/logging"
	"github.com/mmcdole/flick/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		query       string
		plain       bool
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&query, "q", "", "start with a search for `query`")
	flag.StringVar(&query, "query", "", "start with a search for `query`")
	flag.BoolVar(&plain, "plain", false, "print results as text instead of the interactive grid")
	flag.Parse()

	if showVersion {
		fmt.Printf("flick %s\n", Version)
		return
	}

	if err := run(query, plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(query string, plain bool) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting flick", "version", Version)

	client := catalog.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout, logger)
	images := domain.ImageConfig{
		BaseURL:    cfg.TMDB.ImageBaseURL,
		PosterSize: cfg.TMDB.PosterSize,
	}

	startView := tui.ParseViewKind(cfg.UI.DefaultView)
	query = strings.TrimSpace(query)
	if query != "" {
		startView = tui.ViewSearch
	}

	if plain || !tui.IsTerminal(os.Stdout) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		err := tui.RunPlain(ctx, os.Stdout, client, logger, tui.PlainOptions{
			Kind:   startView,
			Query:  query,
			Images: images,
			Width:  tui.TerminalWidth(os.Stdout),
		})
		if err != nil {
			// Details are in the log; the message was already printed
			return errors.New("catalog request failed")
		}
		return nil
	}

	// Create TUI model
	model := tui.NewModel(client, logger, tui.Options{
		Images:      images,
		Columns:     cfg.UI.GridColumns,
		DefaultView: startView,
		Query:       query,
		Timeout:     cfg.TMDB.Timeout,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		// All-motion reporting is needed for hover without a button held
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, opts...)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
