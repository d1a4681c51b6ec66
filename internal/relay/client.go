package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/clearledger/blogen/internal/importer"
)

var _ importer.Repository = (*Client)(nil)

// Client implements the publish pipeline's repository surface by
// speaking the relay envelope, for deployments where the importer has
// no direct GitHub credential of its own.
type Client struct {
	http          *resty.Client
	endpoint      string
	token         string
	defaultBranch string
}

func NewClient(endpoint, token, defaultBranch string) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(30 * time.Second),
		endpoint:      endpoint,
		token:         token,
		defaultBranch: defaultBranch,
	}
}

// do posts one relay envelope and returns the upstream response.
func (c *Client) do(ctx context.Context, method, path string, payload any) (*resty.Response, error) {
	req := ProxyRequest{Method: method, Path: path}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode relay body: %w", err)
		}
		req.Body = body
	}

	r := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req)
	if c.token != "" {
		r.SetHeader("Authorization", "Bearer "+c.token)
	}

	resp, err := r.Post(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("relay call failed: %w", err)
	}
	return resp, nil
}

func (c *Client) DefaultBranchSHA(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, "GET", "/git/ref/heads/"+c.defaultBranch, nil)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("error getting ref for %s: %s", c.defaultBranch, resp.String())
	}

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := json.Unmarshal(resp.Body(), &ref); err != nil {
		return "", fmt.Errorf("failed to decode ref response: %w", err)
	}
	return ref.Object.SHA, nil
}

func (c *Client) BranchExists(ctx context.Context, branch string) (bool, error) {
	resp, err := c.do(ctx, "GET", "/git/ref/heads/"+branch, nil)
	if err != nil {
		return false, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return false, nil
	}
	if resp.IsError() {
		return false, fmt.Errorf("error checking branch %s: %s", branch, resp.String())
	}
	return true, nil
}

func (c *Client) CreateBranch(ctx context.Context, branch, sha string) error {
	resp, err := c.do(ctx, "POST", "/git/refs", map[string]string{
		"ref": "refs/heads/" + branch,
		"sha": sha,
	})
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("error creating ref %s: %s", branch, resp.String())
	}
	return nil
}

func (c *Client) CommitFile(ctx context.Context, branch, path, message string, content []byte) error {
	resp, err := c.do(ctx, "PUT", "/contents/"+path, map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  branch,
	})
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("error creating file %s on %s: %s", path, branch, resp.String())
	}
	return nil
}

func (c *Client) OpenPullRequest(ctx context.Context, title, head, base, body string) (int, error) {
	resp, err := c.do(ctx, "POST", "/pulls", map[string]string{
		"title": title,
		"head":  head,
		"base":  base,
		"body":  body,
	})
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("error creating pull request for %s: %s", head, resp.String())
	}

	var pr struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(resp.Body(), &pr); err != nil {
		return 0, fmt.Errorf("failed to decode pull request response: %w", err)
	}
	return pr.Number, nil
}

func (c *Client) AddLabels(ctx context.Context, prNumber int, labels []string) error {
	resp, err := c.do(ctx, "POST", fmt.Sprintf("/issues/%d/labels", prNumber), map[string][]string{
		"labels": labels,
	})
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("error adding labels to #%d: %s", prNumber, resp.String())
	}
	return nil
}
