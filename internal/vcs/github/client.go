package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/clearledger/blogen/internal/importer"
)

var _ importer.Repository = (*Client)(nil)

type GitService interface {
	GetRef(ctx context.Context, owner, repo, ref string) (*github.Reference, *github.Response, error)
	CreateRef(ctx context.Context, owner, repo string, ref github.CreateRef) (*github.Reference, *github.Response, error)
}

type RepositoriesService interface {
	CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

type PullRequestsService interface {
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

type IssuesService interface {
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
}

// Client talks to the GitHub REST API with a bearer token. It covers
// exactly the primitives the editorial publish pipeline needs.
type Client struct {
	gitService    GitService
	repoService   RepositoriesService
	prService     PullRequestsService
	issuesService IssuesService
	owner         string
	repo          string
	defaultBranch string
}

func NewClient(owner, repo, defaultBranch, token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{
		gitService:    client.Git,
		repoService:   client.Repositories,
		prService:     client.PullRequests,
		issuesService: client.Issues,
		owner:         owner,
		repo:          repo,
		defaultBranch: defaultBranch,
	}
}

func NewClientWithServices(
	gitService GitService,
	repoService RepositoriesService,
	prService PullRequestsService,
	issuesService IssuesService,
	owner, repo, defaultBranch string,
) *Client {
	return &Client{
		gitService:    gitService,
		repoService:   repoService,
		prService:     prService,
		issuesService: issuesService,
		owner:         owner,
		repo:          repo,
		defaultBranch: defaultBranch,
	}
}

// DefaultBranchSHA returns the tip commit of the default branch.
func (c *Client) DefaultBranchSHA(ctx context.Context) (string, error) {
	ref, _, err := c.gitService.GetRef(ctx, c.owner, c.repo, "refs/heads/"+c.defaultBranch)
	if err != nil {
		return "", fmt.Errorf("error getting ref for %s: %w", c.defaultBranch, err)
	}
	return ref.GetObject().GetSHA(), nil
}

// BranchExists reports whether the branch exists. A 404 means
// available; any other failure propagates so availability is never
// assumed.
func (c *Client) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, resp, err := c.gitService.GetRef(ctx, c.owner, c.repo, "refs/heads/"+branch)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("error checking branch %s: %w", branch, err)
	}
	return true, nil
}

// CreateBranch creates a new ref at the given commit.
func (c *Client) CreateBranch(ctx context.Context, branch, sha string) error {
	ref := github.CreateRef{
		Ref: "refs/heads/" + branch,
		SHA: sha,
	}
	_, _, err := c.gitService.CreateRef(ctx, c.owner, c.repo, ref)
	if err != nil {
		return fmt.Errorf("error creating ref %s: %w", branch, err)
	}
	return nil
}

// CommitFile writes a new file onto the branch in a single commit. The
// API layer handles base64 encoding of the content.
func (c *Client) CommitFile(ctx context.Context, branch, path, message string, content []byte) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
		Branch:  github.Ptr(branch),
	}
	_, _, err := c.repoService.CreateFile(ctx, c.owner, c.repo, path, opts)
	if err != nil {
		return fmt.Errorf("error creating file %s on %s: %w", path, branch, err)
	}
	return nil
}

// OpenPullRequest opens a pull request from head to base.
func (c *Client) OpenPullRequest(ctx context.Context, title, head, base, body string) (int, error) {
	pr, _, err := c.prService.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.Ptr(title),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return 0, fmt.Errorf("error creating pull request for %s: %w", head, err)
	}
	return pr.GetNumber(), nil
}

// AddLabels applies labels to the pull request.
func (c *Client) AddLabels(ctx context.Context, prNumber int, labels []string) error {
	_, _, err := c.issuesService.AddLabelsToIssue(ctx, c.owner, c.repo, prNumber, labels)
	if err != nil {
		return fmt.Errorf("error adding labels to #%d: %w", prNumber, err)
	}
	return nil
}
