package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/content"
	"github.com/clearledger/blogen/internal/feeds"
	"github.com/clearledger/blogen/internal/importer"
	"github.com/clearledger/blogen/internal/logger"
)

type Handlers struct {
	config    *config.Config
	posts     *content.Repository
	feeds     *feeds.Service
	remote    importer.Repository
	validator *importer.Validator
	batches   *batchRegistry
}

func NewHandlers(cfg *config.Config, posts *content.Repository, feedSvc *feeds.Service, remote importer.Repository) *Handlers {
	return &Handlers{
		config:    cfg,
		posts:     posts,
		feeds:     feedSvc,
		remote:    remote,
		validator: importer.NewValidator(),
		batches:   newBatchRegistry(),
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"env":    h.config.Env,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// ListPosts handles GET /api/v1/posts with category, status, search
// and featured filters.
func (h *Handlers) ListPosts(c *fiber.Ctx) error {
	opts := content.FilterOptions{
		Category:     c.Query("category"),
		Status:       c.Query("status"),
		Search:       c.Query("q"),
		FeaturedOnly: c.QueryBool("featured"),
	}

	posts := h.posts.Filter(opts)
	return c.JSON(fiber.Map{
		"total": len(posts),
		"items": posts,
	})
}

// GetPost handles GET /api/v1/posts/:slug
func (h *Handlers) GetPost(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, ok := h.posts.BySlug(slug)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	return c.JSON(post)
}

// GetRelatedPosts handles GET /api/v1/posts/:slug/related
func (h *Handlers) GetRelatedPosts(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if _, ok := h.posts.BySlug(slug); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Post not found",
		})
	}
	return c.JSON(fiber.Map{
		"items": h.posts.Related(slug, 3),
	})
}

// RSS handles GET /rss.xml
func (h *Handlers) RSS(c *fiber.Ctx) error {
	xmlStr, err := h.feeds.RSS(c.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error generating RSS feed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate RSS feed",
		})
	}

	c.Set("Content-Type", "application/rss+xml; charset=utf-8")
	c.Set("ETag", etag(xmlStr))
	return c.SendString(xmlStr)
}

// Sitemap handles GET /sitemap.xml
func (h *Handlers) Sitemap(c *fiber.Ctx) error {
	xmlStr, err := h.feeds.Sitemap(c.Context())
	if err != nil {
		logger.Get().Error().Err(err).Msg("Error generating sitemap")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate sitemap",
		})
	}

	c.Set("Content-Type", "application/xml; charset=utf-8")
	c.Set("ETag", etag(xmlStr))
	return c.SendString(xmlStr)
}

// RefreshFeeds handles POST /api/v1/admin/feeds/refresh: reloads the
// content directory, regenerates both feeds and pushes them to object
// storage when configured.
func (h *Handlers) RefreshFeeds(c *fiber.Ctx) error {
	h.posts.Reload()

	if err := h.feeds.Refresh(c.Context()); err != nil {
		logger.Get().Error().Err(err).Msg("Error refreshing feeds")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to refresh feeds",
		})
	}

	return c.JSON(fiber.Map{
		"status": "refreshed",
	})
}

func etag(body string) string {
	sum := sha256.Sum256([]byte(body))
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

// importContext detaches a batch run from the request that started it.
func importContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Minute)
}
