package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/clearledger/blogen/internal/config"
)

// ProxyRequest is the envelope the relay accepts: an HTTP method, a
// path relative to the repository root and an optional JSON body.
type ProxyRequest struct {
	Method string          `json:"method"`
	Path   string          `json:"path"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// Forwarder relays repository-rooted requests to the GitHub REST API,
// attaching either the caller-supplied credential or the server-held
// token. Credentials never live in application code.
type Forwarder struct {
	client *resty.Client
	base   string
	token  string
}

func NewForwarder(cfg *config.Config) *Forwarder {
	return &Forwarder{
		client: resty.New().
			SetTimeout(30 * time.Second),
		base:  fmt.Sprintf("https://api.github.com/repos/%s/%s", cfg.GitHubOwner, cfg.GitHubRepo),
		token: cfg.GitHubToken,
	}
}

// NewForwarderWithBase is used by tests to point the forwarder at a
// local stand-in for the GitHub API.
func NewForwarderWithBase(base, token string) *Forwarder {
	return &Forwarder{
		client: resty.New().SetTimeout(30 * time.Second),
		base:   base,
		token:  token,
	}
}

// Forward executes one relayed call and passes the upstream status and
// body through verbatim.
func (f *Forwarder) Forward(ctx context.Context, req ProxyRequest, callerAuth string) (int, []byte, error) {
	if err := validatePath(req.Path); err != nil {
		return 0, nil, err
	}

	auth := callerAuth
	if auth == "" && f.token != "" {
		auth = "Bearer " + f.token
	}

	r := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("User-Agent", "blogen-github-relay")
	if auth != "" {
		r.SetHeader("Authorization", auth)
	}
	if len(req.Body) > 0 {
		r.SetHeader("Content-Type", "application/json").SetBody([]byte(req.Body))
	}

	resp, err := r.Execute(strings.ToUpper(req.Method), f.base+req.Path)
	if err != nil {
		return 0, nil, fmt.Errorf("relay request failed: %w", err)
	}

	return resp.StatusCode(), resp.Body(), nil
}

func validatePath(path string) error {
	if path == "" || !strings.HasPrefix(path, "/") {
		return fmt.Errorf("invalid relay path %q", path)
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("invalid relay path %q", path)
	}
	return nil
}
