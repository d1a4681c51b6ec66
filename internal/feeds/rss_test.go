package feeds

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/clearledger/blogen/internal/models"
)

func testRSSGenerator() *RSSGenerator {
	return &RSSGenerator{
		baseURL:     "https://clearledgercpas.com",
		title:       "ClearLedger CPAs Blog",
		description: "Tax and accounting insights",
		language:    "en-us",
		now:         func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func publishedPost(slug, title string, date time.Time) models.BlogPost {
	return models.BlogPost{
		Slug:      slug,
		Title:     title,
		Date:      date,
		Author:    "Jane Doe, CPA",
		Category:  "Tax Planning",
		Excerpt:   "An excerpt about " + title + ".",
		Status:    "published",
		Published: true,
	}
}

func TestRSSChannelMetadata(t *testing.T) {
	g := testRSSGenerator()
	out := g.Generate(nil)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`,
		"<title>ClearLedger CPAs Blog</title>",
		"<description>Tax and accounting insights</description>",
		"<link>https://clearledgercpas.com/blog</link>",
		"<language>en-us</language>",
		"<ttl>1440</ttl>",
		`<atom:link href="https://clearledgercpas.com/rss.xml" rel="self" type="application/rss+xml" />`,
		"Copyright 2025 ClearLedger CPAs",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("feed missing %q:\n%s", want, out)
		}
	}
}

func TestRSSExcludesUnpublishedPosts(t *testing.T) {
	g := testRSSGenerator()
	posts := []models.BlogPost{
		publishedPost("live-post", "Live Post", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		{Slug: "draft-post", Title: "Draft Post", Status: "draft", Published: false, Date: time.Now()},
	}

	out := g.Generate(posts)
	if !strings.Contains(out, "Live Post") {
		t.Error("published post missing from feed")
	}
	if strings.Contains(out, "Draft Post") {
		t.Error("unpublished post leaked into feed")
	}
}

func TestRSSItemLimit(t *testing.T) {
	g := testRSSGenerator()
	var posts []models.BlogPost
	for i := 0; i < 30; i++ {
		posts = append(posts, publishedPost(
			fmt.Sprintf("post-%d", i),
			fmt.Sprintf("Post %d", i),
			time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
		))
	}

	out := g.Generate(posts)
	if got := strings.Count(out, "<item>"); got != 20 {
		t.Errorf("feed has %d items, want 20", got)
	}
}

func TestRSSItemFields(t *testing.T) {
	g := testRSSGenerator()
	post := publishedPost("rsu-guide", "RSU Vesting & Taxes", time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC))

	out := g.Generate([]models.BlogPost{post})

	// Title is XML-escaped, description is CDATA-wrapped.
	if !strings.Contains(out, "<title>RSU Vesting &amp; Taxes</title>") {
		t.Errorf("title not escaped:\n%s", out)
	}
	if !strings.Contains(out, "<description><![CDATA[An excerpt about RSU Vesting & Taxes.]]></description>") {
		t.Errorf("description not CDATA-wrapped:\n%s", out)
	}
	if !strings.Contains(out, "<link>https://clearledgercpas.com/blog/rsu-guide</link>") {
		t.Errorf("item link wrong:\n%s", out)
	}
	if !strings.Contains(out, `<guid isPermaLink="true">https://clearledgercpas.com/blog/rsu-guide</guid>`) {
		t.Errorf("guid wrong:\n%s", out)
	}
	if !strings.Contains(out, "<pubDate>Sun, 01 Jun 2025 09:30:00 +0000</pubDate>") {
		t.Errorf("pubDate wrong:\n%s", out)
	}
	if !strings.Contains(out, "<category>Tax Planning</category>") {
		t.Errorf("category missing:\n%s", out)
	}
}

func TestRSSDescriptionFallsBackToContent(t *testing.T) {
	g := testRSSGenerator()
	post := publishedPost("long-post", "Long Post", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	post.Excerpt = ""
	post.Content = strings.Repeat("x", 300)

	out := g.Generate([]models.BlogPost{post})
	want := "<![CDATA[" + strings.Repeat("x", 200) + "...]]>"
	if !strings.Contains(out, want) {
		t.Errorf("content not truncated to 200 chars:\n%s", out)
	}
}
