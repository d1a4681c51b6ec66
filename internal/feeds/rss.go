package feeds

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/models"
)

// rssItemLimit caps the feed at the most recent published posts.
const rssItemLimit = 20

// RSSGenerator maps the post collection to an RSS 2.0 XML document.
type RSSGenerator struct {
	baseURL     string
	title       string
	description string
	language    string
	now         func() time.Time
}

func NewRSSGenerator(cfg *config.Config) *RSSGenerator {
	return &RSSGenerator{
		baseURL:     cfg.BaseURL,
		title:       cfg.SiteTitle,
		description: cfg.SiteDescription,
		language:    cfg.SiteLanguage,
		now:         time.Now,
	}
}

// Generate renders the full feed. Only published posts are included.
func (g *RSSGenerator) Generate(posts []models.BlogPost) string {
	var buf bytes.Buffer

	published := make([]models.BlogPost, 0, len(posts))
	for _, post := range posts {
		if post.Published {
			published = append(published, post)
		}
		if len(published) == rssItemLimit {
			break
		}
	}

	lastBuildDate := g.now().UTC().Format(time.RFC1123Z)
	pubDate := lastBuildDate
	if len(published) > 0 {
		pubDate = published[0].Date.UTC().Format(time.RFC1123Z)
	}

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", g.title, 4)
	writeElement(&buf, "description", g.description, 4)
	writeElement(&buf, "link", g.baseURL+"/blog", 4)
	writeElement(&buf, "language", g.language, 4)
	writeElement(&buf, "lastBuildDate", lastBuildDate, 4)
	writeElement(&buf, "pubDate", pubDate, 4)
	writeElement(&buf, "ttl", "1440", 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s/rss.xml\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(g.baseURL)))
	writeElement(&buf, "copyright", fmt.Sprintf("Copyright %d ClearLedger CPAs. All rights reserved.", g.now().Year()), 4)

	for _, post := range published {
		g.writeItem(&buf, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String()
}

func (g *RSSGenerator) writeItem(buf *bytes.Buffer, post models.BlogPost) {
	link := fmt.Sprintf("%s/blog/%s", g.baseURL, post.Slug)

	description := post.Excerpt
	if description == "" {
		description = post.Content
		if len(description) > 200 {
			description = description[:200] + "..."
		}
	}

	buf.WriteString("    <item>\n")
	writeElement(buf, "title", post.Title, 6)
	buf.WriteString("      <description><![CDATA[")
	buf.WriteString(description)
	buf.WriteString("]]></description>\n")
	writeElement(buf, "link", link, 6)
	buf.WriteString("      <guid isPermaLink=\"true\">")
	xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")
	writeElement(buf, "pubDate", post.Date.UTC().Format(time.RFC1123Z), 6)
	if post.Category != "" {
		writeElement(buf, "category", post.Category, 6)
	}
	if post.Author != "" {
		writeElement(buf, "author", post.Author, 6)
	}
	buf.WriteString("    </item>\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
