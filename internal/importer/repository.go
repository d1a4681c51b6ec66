package importer

import "context"

// Repository is the remote source-hosting surface the publish pipeline
// needs. The direct GitHub client and the relay client both implement
// it.
type Repository interface {
	// DefaultBranchSHA returns the tip commit of the default branch.
	DefaultBranchSHA(ctx context.Context) (string, error)

	// BranchExists reports whether the named branch exists.
	BranchExists(ctx context.Context, branch string) (bool, error)

	// CreateBranch creates a new ref at the given commit.
	CreateBranch(ctx context.Context, branch, sha string) error

	// CommitFile writes a new file onto the branch in a single commit.
	CommitFile(ctx context.Context, branch, path, message string, content []byte) error

	// OpenPullRequest opens a pull request from head to base and
	// returns its number.
	OpenPullRequest(ctx context.Context, title, head, base, body string) (int, error)

	// AddLabels applies labels to the pull request.
	AddLabels(ctx context.Context, prNumber int, labels []string) error
}
