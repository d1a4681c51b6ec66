package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/clearledger/blogen/internal/api"
	"github.com/clearledger/blogen/internal/cache"
	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/content"
	"github.com/clearledger/blogen/internal/feeds"
	"github.com/clearledger/blogen/internal/importer"
	"github.com/clearledger/blogen/internal/logger"
	"github.com/clearledger/blogen/internal/middleware"
	"github.com/clearledger/blogen/internal/relay"
	githubvcs "github.com/clearledger/blogen/internal/vcs/github"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env != "production",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Feed cache. Redis is optional; a process-local cache keeps the
	// feeds working when it is absent.
	var feedCache cache.Cache
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process cache")
		feedCache = cache.NewMockCache()
	} else {
		feedCache = redisClient
	}
	defer func() {
		log.Info().Msg("Closing cache...")
		if err := feedCache.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing cache")
		}
	}()

	// Content
	loader := content.NewLoader(cfg.ContentDir, cfg.DefaultAuthor)
	posts := content.NewRepository(loader)
	log.Info().Int("posts", len(posts.All())).Str("dir", cfg.ContentDir).Msg("Content loaded")

	// Feeds
	publisher, err := feeds.NewPublisher(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize feed publisher")
	}
	feedSvc := feeds.NewService(
		posts,
		feedCache,
		feeds.NewRSSGenerator(cfg),
		feeds.NewSitemapGenerator(cfg),
		publisher,
		cfg.CacheTTL,
	)
	if err := feedSvc.Refresh(context.Background()); err != nil {
		log.Error().Err(err).Msg("Initial feed refresh failed")
	}

	// Publishing backend for the bulk importer
	var remote importer.Repository
	if cfg.GitHubOwner != "" && cfg.GitHubRepo != "" {
		remote = githubvcs.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, cfg.DefaultBranch, cfg.GitHubToken)
	} else {
		log.Warn().Msg("GITHUB_OWNER/GITHUB_REPO not set, import endpoints disabled")
	}

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    10 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// Setup API routes
	handlers := api.NewHandlers(cfg, posts, feedSvc, remote)
	api.SetupRoutes(app, handlers, relay.NewForwarder(cfg), cfg)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
