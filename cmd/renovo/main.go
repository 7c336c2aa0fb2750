package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/renovo/internal/catalog"
	"github.com/alexanderramin/renovo/internal/cli"
	"github.com/alexanderramin/renovo/internal/config"
	"github.com/alexanderramin/renovo/internal/db"
	"github.com/alexanderramin/renovo/internal/feedback"
	"github.com/alexanderramin/renovo/internal/graph"
	"github.com/alexanderramin/renovo/internal/pricing"
	"github.com/alexanderramin/renovo/internal/repository"
	"github.com/alexanderramin/renovo/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Feedback store
	var backend feedback.Backend = feedback.NewFileBackend(cfg.FeedbackPath)
	if cfg.FeedbackBackend == config.BackendSQLite {
		backend = feedback.NewSQLiteBackend(db.NewSQLiteUnitOfWork(database))
	}
	store := feedback.NewStore(backend, feedback.WithLogger(logger))
	if err := store.Load(context.Background()); err != nil {
		// Degraded state still prices with neutral defaults.
		logger.Warn("feedback state unreadable", "backend", cfg.FeedbackBackend, "error", err)
	}

	// Pricing engine
	prices := catalog.Default()
	if cfg.CatalogPath != "" {
		if prices, err = catalog.LoadFile(cfg.CatalogPath); err != nil {
			return err
		}
	}
	g, err := graph.Bathroom()
	if err != nil {
		return fmt.Errorf("building task graph: %w", err)
	}
	engine, err := pricing.NewEngine(g, prices, pricing.WithFeedback(store))
	if err != nil {
		return fmt.Errorf("building pricing engine: %w", err)
	}

	// Wire services
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}
	quotes, err := service.NewQuoteService(engine, repository.NewSQLiteQuoteRepo(database), cfg.QuoteCacheSize, observers...)
	if err != nil {
		return err
	}

	app := &cli.App{
		Quotes:   quotes,
		Feedback: service.NewFeedbackService(store, quotes, g, observers...),
		Logger:   logger,
		HTTPAddr: cfg.HTTPAddr,
	}

	// Detect interactive terminal for the transcript prompt.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
