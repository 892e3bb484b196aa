// Package main runs the Manacart storefront API server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/manacart/manacart/internal/api"
	"github.com/manacart/manacart/internal/cards"
	"github.com/manacart/manacart/internal/checkout"
	"github.com/manacart/manacart/internal/config"
	"github.com/manacart/manacart/internal/pricing"
	"github.com/manacart/manacart/internal/scryfall"
	"github.com/manacart/manacart/internal/storage"
)

var (
	configPath = flag.String("config", "manacart.toml", "Path to the config file")
	port       = flag.Int("port", 0, "Override the configured listen port")
	dbPath     = flag.String("db-path", "", "Override the configured database path")
)

func main() {
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	dbConfig := storage.DefaultConfig(cfg.Database.Path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}

	store := storage.NewService(db)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("error closing storage", "error", err)
		}
	}()

	// The tier table is swapped atomically on config reload; in-flight
	// quotes keep the table they started with.
	var table atomic.Pointer[pricing.Table]
	initial, err := cfg.TierTable()
	if err != nil {
		logger.Error("invalid pricing config", "error", err)
		os.Exit(1)
	}
	table.Store(initial)
	tableProvider := func() *pricing.Table { return table.Load() }

	scryfallOpts := []scryfall.Option{}
	if cfg.Scryfall.BaseURL != "" {
		scryfallOpts = append(scryfallOpts, scryfall.WithBaseURL(cfg.Scryfall.BaseURL))
	}
	if cfg.Scryfall.UserAgent != "" {
		scryfallOpts = append(scryfallOpts, scryfall.WithUserAgent(cfg.Scryfall.UserAgent))
	}
	scryfallClient := scryfall.NewClient(scryfallOpts...)

	cardService := cards.NewService(store.Cards(), scryfallClient, cards.Options{Logger: logger})
	checkoutService := checkout.NewService(
		store.Orders(), store.Discounts(), tableProvider,
		&checkout.LogNotifier{Logger: logger}, logger,
	)

	requestTimeout, err := time.ParseDuration(cfg.Server.RequestTimeout)
	if err != nil {
		requestTimeout = 30 * time.Second
	}
	server := api.NewServer(&api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminKeyHash:   cfg.Server.AdminKeyHash,
		RequestTimeout: requestTimeout,
	}, &api.Services{
		Decks:     store.Decks(),
		Discounts: store.Discounts(),
		Cards:     cardService,
		Checkout:  checkoutService,
		Backups:   storage.NewBackupManager(cfg.Database.Path, ""),
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reload the tier table when the config file changes.
	watcher, err := config.NewWatcher(*configPath, func(next *config.Config) {
		nextTable, err := next.TierTable()
		if err != nil {
			logger.Error("reloaded config has invalid pricing, keeping current table", "error", err)
			return
		}
		table.Store(nextTable)
		logger.Info("pricing table updated")
	}, logger)
	if err != nil {
		logger.Warn("config hot reload disabled", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	if err := server.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		os.Exit(1)
	}
	logger.Info("manacart is up", "port", cfg.Server.Port, "database", cfg.Database.Path)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}
