package models

import "time"

// ImportRow is one spreadsheet record from a bulk import upload.
// Column names match the CSV header exactly.
type ImportRow struct {
	Title           string `json:"title" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Author          string `json:"author" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Excerpt         string `json:"excerpt" validate:"required"`
	FeaturedImage   string `json:"featuredImage" validate:"omitempty,startswith=/images/blog/"`
	ImageAlt        string `json:"imageAlt"`
	SEOTitle        string `json:"seoTitle"`
	MetaDescription string `json:"metaDescription"`
	Tags            string `json:"tags"`
	ReadingTime     string `json:"readingTime"`
	Featured        string `json:"featured"`
	Status          string `json:"status"`
	Content         string `json:"content" validate:"required"`
}

// RowProgress tracks the remote publish state of one import row.
// Fields are set progressively as each remote step succeeds; the
// record is terminal on first error or after the label step.
type RowProgress struct {
	Row           int    `json:"row"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	BranchCreated bool   `json:"branch_created"`
	FileCommitted bool   `json:"file_committed"`
	PRNumber      *int   `json:"pr_number,omitempty"`
	Labeled       bool   `json:"labeled"`
	Error         string `json:"error,omitempty"`
}

// ImportBatch is a point-in-time snapshot of a running or finished
// bulk import.
type ImportBatch struct {
	ID         string        `json:"id"`
	Total      int           `json:"total"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Rows       []RowProgress `json:"rows"`
}

// Done reports whether every row has reached a terminal state.
func (b *ImportBatch) Done() bool {
	return b.FinishedAt != nil
}
