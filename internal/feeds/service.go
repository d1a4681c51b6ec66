package feeds

import (
	"context"
	"time"

	"github.com/clearledger/blogen/internal/cache"
	"github.com/clearledger/blogen/internal/content"
	"github.com/clearledger/blogen/internal/logger"
)

const (
	rssCacheKey     = "rss-feed"
	sitemapCacheKey = "sitemap"
)

// Service serves the generated feeds through an injected cache and
// optionally publishes them to object storage for CDN delivery.
type Service struct {
	repo      *content.Repository
	cache     cache.Cache
	rss       *RSSGenerator
	sitemap   *SitemapGenerator
	publisher *Publisher
	ttl       time.Duration
}

func NewService(repo *content.Repository, c cache.Cache, rss *RSSGenerator, sitemap *SitemapGenerator, publisher *Publisher, ttl time.Duration) *Service {
	return &Service{
		repo:      repo,
		cache:     c,
		rss:       rss,
		sitemap:   sitemap,
		publisher: publisher,
		ttl:       ttl,
	}
}

// RSS returns the RSS XML, generating and caching it on a miss.
func (s *Service) RSS(ctx context.Context) (string, error) {
	return s.cached(ctx, rssCacheKey, func() string {
		return s.rss.Generate(s.repo.All())
	})
}

// Sitemap returns the sitemap XML, generating and caching it on a miss.
func (s *Service) Sitemap(ctx context.Context) (string, error) {
	return s.cached(ctx, sitemapCacheKey, func() string {
		return s.sitemap.Generate(s.repo.All())
	})
}

// Refresh regenerates both feeds, replaces the cached copies and, when
// a publisher is configured, pushes the XML to object storage.
func (s *Service) Refresh(ctx context.Context) error {
	log := logger.Get()

	rssXML := s.rss.Generate(s.repo.All())
	sitemapXML := s.sitemap.Generate(s.repo.All())

	if err := s.cache.Set(ctx, rssCacheKey, rssXML, s.ttl); err != nil {
		return err
	}
	if err := s.cache.Set(ctx, sitemapCacheKey, sitemapXML, s.ttl); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, "rss.xml", rssXML, "application/rss+xml"); err != nil {
			log.Error().Err(err).Msg("Error publishing RSS feed")
		}
		if err := s.publisher.Publish(ctx, "sitemap.xml", sitemapXML, "application/xml"); err != nil {
			log.Error().Err(err).Msg("Error publishing sitemap")
		}
	}

	log.Info().Msg("Feeds refreshed")
	return nil
}

func (s *Service) cached(ctx context.Context, key string, generate func() string) (string, error) {
	if xmlStr, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return xmlStr, nil
	} else if err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Feed cache read failed, regenerating")
	}

	xmlStr := generate()
	if err := s.cache.Set(ctx, key, xmlStr, s.ttl); err != nil {
		logger.Get().Warn().Err(err).Str("key", key).Msg("Feed cache write failed")
	}
	return xmlStr, nil
}
