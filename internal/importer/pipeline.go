package importer

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/clearledger/blogen/internal/logger"
	"github.com/clearledger/blogen/internal/models"
)

// Options configures the publish pipeline.
type Options struct {
	DefaultBranch string
	BranchPrefix  string
	ContentPath   string
	Label         string
	DefaultAuthor string
	RowDelay      time.Duration
}

// Pipeline publishes validated import rows to the remote repository,
// one row fully at a time: branch, commit, pull request, label. Rows
// never retry and partially-created remote state is never rolled back.
type Pipeline struct {
	repo Repository
	opts Options
}

func NewPipeline(repo Repository, opts Options) *Pipeline {
	return &Pipeline{repo: repo, opts: opts}
}

// Run processes the batch sequentially. A row's failure is recorded in
// the tracker and the next row still begins; the fixed pause between
// rows keeps the remote API's rate limiter happy.
func (p *Pipeline) Run(ctx context.Context, rows []models.ImportRow, tracker *Tracker) {
	log := logger.Get()
	defer tracker.Finish()

	for i, row := range rows {
		tracker.Begin(i, row.Title)

		if err := p.publishRow(ctx, i, row, tracker); err != nil {
			log.Error().Err(err).Int("row", i+1).Str("title", row.Title).Msg("Row import failed")
			tracker.Fail(i, err)
		}

		if i < len(rows)-1 && p.opts.RowDelay > 0 {
			select {
			case <-ctx.Done():
				log.Warn().Int("processed", i+1).Int("total", len(rows)).Msg("Import cancelled")
				return
			case <-time.After(p.opts.RowDelay):
			}
		}
	}

	log.Info().Int("rows", len(rows)).Msg("Import batch finished")
}

func (p *Pipeline) publishRow(ctx context.Context, i int, row models.ImportRow, tracker *Tracker) error {
	log := logger.Get()

	slug, branch, err := AllocateBranch(ctx, p.repo, p.opts.BranchPrefix, Slugify(row.Title))
	if err != nil {
		return err
	}
	tracker.SetSlug(i, slug)

	sha, err := p.repo.DefaultBranchSHA(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve %s tip: %w", p.opts.DefaultBranch, err)
	}

	if err := p.repo.CreateBranch(ctx, branch, sha); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	tracker.MarkBranchCreated(i)

	document := GenerateMarkdown(row, p.opts.DefaultAuthor)
	filePath := path.Join(p.opts.ContentPath, slug+".md")
	message := fmt.Sprintf("Add blog post: %s", row.Title)
	if err := p.repo.CommitFile(ctx, branch, filePath, message, []byte(document)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", filePath, err)
	}
	tracker.MarkFileCommitted(i)

	prTitle := fmt.Sprintf("Add blog post: %s", row.Title)
	prBody := fmt.Sprintf("Bulk import of %q (%s).\n\nReview the generated content before merging.", row.Title, slug)
	prNumber, err := p.repo.OpenPullRequest(ctx, prTitle, branch, p.opts.DefaultBranch, prBody)
	if err != nil {
		return fmt.Errorf("failed to open pull request for %s: %w", branch, err)
	}
	tracker.SetPRNumber(i, prNumber)

	// Labeling is best-effort: a failure here must not mark an
	// otherwise-successful row as failed.
	if p.opts.Label != "" {
		if err := p.repo.AddLabels(ctx, prNumber, []string{p.opts.Label}); err != nil {
			log.Warn().Err(err).Int("pr", prNumber).Msg("Failed to label pull request")
		} else {
			tracker.MarkLabeled(i)
		}
	}

	return nil
}
