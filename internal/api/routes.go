package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/middleware"
	"github.com/clearledger/blogen/internal/relay"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, forwarder *relay.Forwarder, cfg *config.Config) {
	// Feeds are served from the site root, next to the pages they index
	app.Get("/rss.xml", handlers.RSS)
	app.Get("/sitemap.xml", handlers.Sitemap)

	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// Blog post endpoints
	posts := api.Group("/posts")
	{
		posts.Get("", handlers.ListPosts)
		posts.Get("/:slug", handlers.GetPost)
		posts.Get("/:slug/related", handlers.GetRelatedPosts)
	}

	// Same-origin relay to the content repository's API
	api.Post("/github/proxy", middleware.AdminOnly(cfg.AdminAPIKey), relay.Handler(forwarder))

	// Editorial endpoints
	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Get("/import/template", handlers.DownloadTemplate)
		admin.Post("/import", handlers.StartImport)
		admin.Get("/import/:id", handlers.GetImportProgress)
		admin.Post("/feeds/refresh", handlers.RefreshFeeds)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
