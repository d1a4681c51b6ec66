package content

import (
	"time"

	"github.com/clearledger/blogen/internal/models"
)

// fallbackPosts returns the fixed built-in post set used when no
// markdown files can be loaded.
func fallbackPosts() []models.BlogPost {
	return []models.BlogPost{
		{
			Slug:          "rsu-tax-planning",
			Title:         "RSU Tax Planning: Timing Your Stock Vesting for Maximum Benefit",
			Date:          time.Date(2025, 1, 3, 10, 0, 0, 0, time.UTC),
			Author:        "ClearLedger CPAs Team",
			Category:      "Tax Planning",
			Excerpt:       "Learn strategic approaches to RSU taxation and timing to minimize your tax burden.",
			FeaturedImage: "/images/blog/rsu-tax-planning-stock-vesting.jpg",
			ImageAlt:      "Professional analyzing stock options and RSU documentation",
			ReadingTime:   "8 min read",
			Featured:      true,
			Status:        "published",
			Published:     true,
			Content:       "Content here...",
		},
		{
			Slug:          "draft-post",
			Title:         "Draft Post for Testing",
			Date:          time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC),
			Author:        "Test Author",
			Category:      "Tax Planning",
			Excerpt:       "This is a draft post for testing filtering.",
			FeaturedImage: "/images/blog/tax-planning-high-income-professionals.jpg",
			ImageAlt:      "Draft post image",
			ReadingTime:   "5 min read",
			Status:        "draft",
			Content:       "Draft content...",
		},
		{
			Slug:          "review-post",
			Title:         "In Review Post for Testing",
			Date:          time.Date(2025, 1, 19, 10, 0, 0, 0, time.UTC),
			Author:        "Test Author",
			Category:      "Tax Credits",
			Excerpt:       "This is an in-review post for testing filtering.",
			FeaturedImage: "/images/blog/rd-tax-credits-tech-companies.jpg",
			ImageAlt:      "Review post image",
			ReadingTime:   "6 min read",
			Status:        "in_review",
			Content:       "Review content...",
		},
		{
			Slug:          "ready-post",
			Title:         "Ready Post for Testing",
			Date:          time.Date(2025, 1, 18, 10, 0, 0, 0, time.UTC),
			Author:        "Test Author",
			Category:      "Estate Planning",
			Excerpt:       "This is a ready post for testing filtering.",
			FeaturedImage: "/images/blog/estate-planning-multi-generational.jpg",
			ImageAlt:      "Ready post image",
			ReadingTime:   "7 min read",
			Featured:      true,
			Status:        "ready",
			Content:       "Ready content...",
		},
	}
}
