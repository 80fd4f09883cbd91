// Package main provides the BizHub web/API server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bizhubhq/bizhub/internal/config"
	"github.com/bizhubhq/bizhub/internal/db"
	"github.com/bizhubhq/bizhub/internal/llm"
	"github.com/bizhubhq/bizhub/internal/metrics"
	"github.com/bizhubhq/bizhub/internal/moderation"
	"github.com/bizhubhq/bizhub/internal/server"
	"github.com/bizhubhq/bizhub/internal/service"
)

const version = "0.1.0"

func main() {
	// Parse flags
	wipeDB := flag.Bool("wipe", false, "wipe all data from database on startup (testing only)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("bizhub-server starting",
		"version", version,
		"port", cfg.ServerPort,
		"surrealdb_url", cfg.SurrealDBURL,
		"ai_provider", cfg.AIProvider,
	)

	// Create context cancelled on shutdown signals
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// Connect to database
	dbCfg := db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}

	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	dbClient, err := db.NewClient(connectCtx, dbCfg, logger)
	connectCancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("closing database connection")
		_ = dbClient.Close(context.Background())
	}()

	// Initialize schema
	if err := dbClient.InitSchema(ctx); err != nil {
		logger.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// Wipe database if requested (via flag or env var)
	if *wipeDB || os.Getenv("BIZHUB_WIPE_DB") == "true" {
		if err := dbClient.WipeData(ctx); err != nil {
			logger.Error("failed to wipe database", "error", err)
			os.Exit(1)
		}
		logger.Warn("database wiped")
	}

	// Completion client for moderation and server-side chat. The server
	// still serves the directory and the proxy if this fails, but every
	// submission then fails closed to manual review.
	completer, err := llm.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to create completion client, moderation will fail closed", "error", err)
	}

	collector := metrics.NewCollector()
	moderator := moderation.New(completer, logger)

	srv := server.New(cfg, server.Deps{
		Listings:  service.NewListingService(dbClient, moderator, collector, logger),
		Directory: service.NewDirectoryService(dbClient, collector, logger),
		Images:    dbClient,
		Finder:    dbClient,
		Completer: completer,
		Collector: collector,
	}, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
