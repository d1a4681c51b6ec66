package importer

import (
	"bytes"
	"encoding/csv"
)

// SampleTemplate produces a downloadable CSV template with the
// recognized columns and one example row. The example row passes the
// validator unchanged.
func SampleTemplate() string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(Columns)
	_ = w.Write([]string{
		"Sample Blog Post Title",
		"2025-01-01T10:00:00.000Z",
		"Hiram Parmar, CPA",
		"Tax Planning",
		"This is a sample excerpt that describes what the blog post is about.",
		"/images/blog/sample-image.jpg",
		"Sample image description for accessibility",
		"Sample SEO Title | ClearLedger CPAs",
		"Sample meta description for SEO purposes",
		"tax planning, business, finance",
		"5 min read",
		"false",
		"draft",
		"# Sample Blog Post\n\nThis is the main content of your blog post. You can use markdown formatting here.\n\n## Subheading\n\nMore content goes here...",
	})
	w.Flush()

	return buf.String()
}
