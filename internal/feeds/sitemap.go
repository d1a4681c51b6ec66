package feeds

import (
	"bytes"
	"fmt"
	"time"

	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/models"
)

type sitemapURL struct {
	loc        string
	lastmod    string
	changefreq string
	priority   float64
}

// SitemapGenerator maps the post collection plus the static page set
// to a sitemap XML document.
type SitemapGenerator struct {
	baseURL string
	now     func() time.Time
}

func NewSitemapGenerator(cfg *config.Config) *SitemapGenerator {
	return &SitemapGenerator{
		baseURL: cfg.BaseURL,
		now:     time.Now,
	}
}

func (g *SitemapGenerator) staticPages() []sitemapURL {
	today := g.now().UTC().Format("2006-01-02")
	return []sitemapURL{
		{"/", today, "weekly", 1.0},
		{"/about", today, "monthly", 0.9},
		{"/business-services", today, "monthly", 0.9},
		{"/personal-services", today, "monthly", 0.9},
		{"/pricing", today, "monthly", 0.8},
		{"/contact", today, "monthly", 0.8},
		{"/book-consultation", today, "monthly", 0.8},
		{"/testimonials", today, "monthly", 0.7},
		{"/faq", today, "monthly", 0.7},
		{"/blog", today, "weekly", 0.8},
		{"/privacy-policy", today, "yearly", 0.3},
		{"/terms-of-service", today, "yearly", 0.3},
	}
}

// Generate renders the sitemap covering static pages and one URL per
// published post.
func (g *SitemapGenerator) Generate(posts []models.BlogPost) string {
	urls := g.staticPages()
	for _, post := range posts {
		if !post.Published {
			continue
		}
		urls = append(urls, sitemapURL{
			loc:        "/blog/" + post.Slug,
			lastmod:    post.Date.UTC().Format("2006-01-02"),
			changefreq: "yearly",
			priority:   0.6,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")

	for _, u := range urls {
		buf.WriteString("  <url>\n")
		writeElement(&buf, "loc", g.baseURL+u.loc, 4)
		writeElement(&buf, "lastmod", u.lastmod, 4)
		writeElement(&buf, "changefreq", u.changefreq, 4)
		writeElement(&buf, "priority", fmt.Sprintf("%.1f", u.priority), 4)
		buf.WriteString("  </url>\n")
	}

	buf.WriteString("</urlset>")
	return buf.String()
}
