package importer

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clearledger/blogen/internal/models"
)

// Tracker records per-row publish progress for one batch. Rows are
// keyed by position and updated in place; the view layer polls
// Snapshot for a consistent copy.
type Tracker struct {
	mu         sync.RWMutex
	id         string
	startedAt  time.Time
	finishedAt *time.Time
	rows       []models.RowProgress
}

func NewTracker(rowCount int) *Tracker {
	return &Tracker{
		id:        uuid.NewString(),
		startedAt: time.Now(),
		rows:      make([]models.RowProgress, rowCount),
	}
}

// ID returns the batch identifier.
func (t *Tracker) ID() string {
	return t.id
}

// Begin initializes the progress record for a row.
func (t *Tracker) Begin(row int, title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row] = models.RowProgress{Row: row + 1, Title: title}
}

// SetSlug records the allocated slug.
func (t *Tracker) SetSlug(row int, slug string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row].Slug = slug
}

// MarkBranchCreated records branch creation.
func (t *Tracker) MarkBranchCreated(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row].BranchCreated = true
}

// MarkFileCommitted records the file commit.
func (t *Tracker) MarkFileCommitted(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row].FileCommitted = true
}

// SetPRNumber records the opened pull request.
func (t *Tracker) SetPRNumber(row int, number int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row].PRNumber = &number
}

// MarkLabeled records the best-effort label step.
func (t *Tracker) MarkLabeled(row int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row].Labeled = true
}

// Fail records a terminal error for the row. An already-successful
// progress record is never overwritten.
func (t *Tracker) Fail(row int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row].Error = err.Error()
}

// Finish marks the batch complete.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	t.finishedAt = &now
}

// Snapshot returns a consistent copy of the batch state.
func (t *Tracker) Snapshot() models.ImportBatch {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]models.RowProgress, len(t.rows))
	copy(rows, t.rows)

	var finished *time.Time
	if t.finishedAt != nil {
		f := *t.finishedAt
		finished = &f
	}

	return models.ImportBatch{
		ID:         t.id,
		Total:      len(t.rows),
		StartedAt:  t.startedAt,
		FinishedAt: finished,
		Rows:       rows,
	}
}
