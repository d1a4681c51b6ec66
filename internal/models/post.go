package models

import "time"

// BlogPost represents one normalized content record loaded from a
// markdown file with front matter.
type BlogPost struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	Author          string    `json:"author"`
	Category        string    `json:"category"`
	Excerpt         string    `json:"excerpt"`
	FeaturedImage   string    `json:"featured_image"`
	ImageAlt        string    `json:"image_alt"`
	SEOTitle        string    `json:"seo_title,omitempty"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	ReadingTime     string    `json:"reading_time"`
	Featured        bool      `json:"featured"`
	Status          string    `json:"status"`
	Published       bool      `json:"published"`
	Content         string    `json:"content"`
}

// SharesTopicWith reports whether the two posts belong to the same
// category or share at least one tag. Used for related-post selection.
func (p *BlogPost) SharesTopicWith(other *BlogPost) bool {
	if p.Category != "" && p.Category == other.Category {
		return true
	}
	for _, t := range p.Tags {
		for _, o := range other.Tags {
			if t == o {
				return true
			}
		}
	}
	return false
}
