package feeds

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clearledger/blogen/internal/cache"
	"github.com/clearledger/blogen/internal/content"
)

const servicePostDoc = `---
title: "Cached Post"
date: "2025-04-01"
category: "Tax Planning"
excerpt: "A post for the feed."
---

Body.
`

func testService(t *testing.T) (*Service, cache.Cache) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cached-post.md"), []byte(servicePostDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	repo := content.NewRepository(content.NewLoader(dir, "Team"))

	c := cache.NewMockCache()
	rss := testRSSGenerator()
	sitemap := testSitemapGenerator()
	return NewService(repo, c, rss, sitemap, nil, time.Hour), c
}

func TestRSSCacheMissGeneratesAndStores(t *testing.T) {
	svc, c := testService(t)
	ctx := context.Background()

	out, err := svc.RSS(ctx)
	if err != nil {
		t.Fatalf("RSS failed: %v", err)
	}
	if !strings.Contains(out, "Cached Post") {
		t.Errorf("generated feed missing post:\n%s", out)
	}

	stored, ok, err := c.Get(ctx, "rss-feed")
	if err != nil || !ok {
		t.Fatalf("feed not cached: ok=%v err=%v", ok, err)
	}
	if stored != out {
		t.Error("cached copy differs from response")
	}
}

func TestRSSCacheHitSkipsGeneration(t *testing.T) {
	svc, c := testService(t)
	ctx := context.Background()

	if err := c.Set(ctx, "rss-feed", "<cached-feed/>", time.Hour); err != nil {
		t.Fatal(err)
	}

	out, err := svc.RSS(ctx)
	if err != nil {
		t.Fatalf("RSS failed: %v", err)
	}
	if out != "<cached-feed/>" {
		t.Errorf("cache hit not served: %q", out)
	}
}

func TestSitemapCached(t *testing.T) {
	svc, c := testService(t)
	ctx := context.Background()

	out, err := svc.Sitemap(ctx)
	if err != nil {
		t.Fatalf("Sitemap failed: %v", err)
	}
	if !strings.Contains(out, "blog/cached-post") {
		t.Errorf("sitemap missing post:\n%s", out)
	}
	if _, ok, _ := c.Get(ctx, "sitemap"); !ok {
		t.Error("sitemap not cached")
	}
}

func TestRefreshReplacesCachedFeeds(t *testing.T) {
	svc, c := testService(t)
	ctx := context.Background()

	if err := c.Set(ctx, "rss-feed", "stale", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := svc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	stored, ok, _ := c.Get(ctx, "rss-feed")
	if !ok || stored == "stale" {
		t.Error("Refresh did not replace the cached feed")
	}
	if _, ok, _ := c.Get(ctx, "sitemap"); !ok {
		t.Error("Refresh did not cache the sitemap")
	}
}
