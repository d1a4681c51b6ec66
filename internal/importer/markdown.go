package importer

import (
	"fmt"
	"strings"

	"github.com/clearledger/blogen/internal/models"
)

const (
	// DefaultReadingTime is used when a row leaves readingTime blank.
	DefaultReadingTime = "5 min read"
)

// IsTruthy reports whether a spreadsheet flag value means true.
func IsTruthy(s string) bool {
	return s == "true" || s == "TRUE" || s == "1"
}

// GenerateMarkdown emits the content document for a row: a front-matter
// block with fixed field order followed by a blank line and the body
// verbatim. Status is always "draft" regardless of the row's status
// column; imported posts enter the editorial workflow unpublished.
func GenerateMarkdown(row models.ImportRow, defaultAuthor string) string {
	author := row.Author
	if author == "" {
		author = defaultAuthor
	}
	readingTime := row.ReadingTime
	if readingTime == "" {
		readingTime = DefaultReadingTime
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", row.Title)
	b.WriteString("status: \"draft\"\n")
	fmt.Fprintf(&b, "date: %q\n", row.Date)
	fmt.Fprintf(&b, "author: %q\n", author)
	fmt.Fprintf(&b, "category: %q\n", row.Category)
	fmt.Fprintf(&b, "featuredImage: %q\n", row.FeaturedImage)
	fmt.Fprintf(&b, "imageAlt: %q\n", row.ImageAlt)
	fmt.Fprintf(&b, "excerpt: %q\n", row.Excerpt)
	if row.SEOTitle != "" {
		fmt.Fprintf(&b, "seoTitle: %q\n", row.SEOTitle)
	}
	if row.MetaDescription != "" {
		fmt.Fprintf(&b, "metaDescription: %q\n", row.MetaDescription)
	}
	if row.Tags != "" {
		tags := strings.Split(row.Tags, ",")
		quoted := make([]string, 0, len(tags))
		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				quoted = append(quoted, fmt.Sprintf("%q", tag))
			}
		}
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(&b, "readingTime: %q\n", readingTime)
	fmt.Fprintf(&b, "featured: %t\n", IsTruthy(row.Featured))
	b.WriteString("---\n\n")
	b.WriteString(row.Content)
	b.WriteString("\n")

	return b.String()
}
