package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearledger/blogen/internal/cache"
	"github.com/clearledger/blogen/internal/config"
	"github.com/clearledger/blogen/internal/content"
	"github.com/clearledger/blogen/internal/feeds"
	"github.com/clearledger/blogen/internal/importer"
	"github.com/clearledger/blogen/internal/middleware"
	"github.com/clearledger/blogen/internal/relay"
)

const adminKey = "test-admin-key"

// stubRepository succeeds at every publish step without touching the
// network.
type stubRepository struct{}

func (stubRepository) DefaultBranchSHA(context.Context) (string, error)     { return "abc123", nil }
func (stubRepository) BranchExists(context.Context, string) (bool, error)   { return false, nil }
func (stubRepository) CreateBranch(context.Context, string, string) error   { return nil }
func (stubRepository) CommitFile(context.Context, string, string, string, []byte) error {
	return nil
}
func (stubRepository) OpenPullRequest(context.Context, string, string, string, string) (int, error) {
	return 42, nil
}
func (stubRepository) AddLabels(context.Context, int, []string) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		BaseURL:       "https://clearledgercpas.com",
		SiteTitle:     "ClearLedger CPAs Blog",
		SiteLanguage:  "en-us",
		DefaultAuthor: "ClearLedger CPAs Team",
		DefaultBranch: "main",
		BranchPrefix:  "cms/blog/",
		ContentPath:   "content/blog",
		ImportLabel:   "blog-import",
		AdminAPIKey:   adminKey,
	}
}

func testApp(t *testing.T, remote importer.Repository) *fiber.App {
	t.Helper()

	cfg := testConfig()

	dir := t.TempDir()
	doc := "---\ntitle: \"RSU Guide\"\ndate: \"2025-03-15\"\ncategory: \"Equity Compensation\"\nexcerpt: \"Vesting basics.\"\ntags: [\"rsu\"]\nfeatured: true\n---\n\nBody.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rsu-guide.md"), []byte(doc), 0o644))

	posts := content.NewRepository(content.NewLoader(dir, cfg.DefaultAuthor))
	feedSvc := feeds.NewService(posts, cache.NewMockCache(),
		feeds.NewRSSGenerator(cfg), feeds.NewSitemapGenerator(cfg), nil, time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	handlers := NewHandlers(cfg, posts, feedSvc, remote)
	SetupRoutes(app, handlers, relay.NewForwarderWithBase("http://localhost:1", ""), cfg)
	return app
}

func doJSON(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func TestHealthCheck(t *testing.T) {
	app := testApp(t, nil)
	status, body := doJSON(t, app, httptest.NewRequest("GET", "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestListPosts(t *testing.T) {
	app := testApp(t, nil)

	status, body := doJSON(t, app, httptest.NewRequest("GET", "/api/v1/posts", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])

	status, body = doJSON(t, app, httptest.NewRequest("GET", "/api/v1/posts?category=Bookkeeping", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])

	status, body = doJSON(t, app, httptest.NewRequest("GET", "/api/v1/posts?q=vesting&featured=true", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
}

func TestGetPost(t *testing.T) {
	app := testApp(t, nil)

	status, body := doJSON(t, app, httptest.NewRequest("GET", "/api/v1/posts/rsu-guide", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "RSU Guide", body["title"])

	status, _ = doJSON(t, app, httptest.NewRequest("GET", "/api/v1/posts/nope", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRelatedPostsUnknownSlug(t *testing.T) {
	app := testApp(t, nil)
	status, _ := doJSON(t, app, httptest.NewRequest("GET", "/api/v1/posts/nope/related", nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRSSEndpoint(t *testing.T) {
	app := testApp(t, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/rss.xml", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/rss+xml")
	assert.NotEmpty(t, resp.Header.Get("ETag"))

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "RSU Guide")
}

func TestSitemapEndpoint(t *testing.T) {
	app := testApp(t, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/sitemap.xml", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
}

func TestAdminEndpointsRequireAPIKey(t *testing.T) {
	app := testApp(t, nil)

	status, _ := doJSON(t, app, httptest.NewRequest("GET", "/api/v1/admin/import/template", nil))
	assert.Equal(t, http.StatusUnauthorized, status)

	req := httptest.NewRequest("GET", "/api/v1/admin/import/template", nil)
	req.Header.Set("X-API-Key", "wrong-key")
	status, _ = doJSON(t, app, req)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDownloadTemplate(t *testing.T) {
	app := testApp(t, nil)

	req := httptest.NewRequest("GET", "/api/v1/admin/import/template", nil)
	req.Header.Set("X-API-Key", adminKey)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "blog-import-template.csv")

	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "title,date,author")
}

func csvUpload(t *testing.T, csvBody string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "batch.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/v1/admin/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-API-Key", adminKey)
	return req
}

func TestStartImportValidationFailureBlocksBatch(t *testing.T) {
	app := testApp(t, stubRepository{})

	// Second row is missing content.
	csvBody := "title,date,author,category,excerpt,content\n" +
		"Good Row,2025-06-01,Jane,Tax,Summary,Body\n" +
		"Bad Row,2025-06-01,Jane,Tax,Summary,\n"

	status, body := doJSON(t, app, csvUpload(t, csvBody))
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	errs, ok := body["errors"].([]any)
	require.True(t, ok, "errors list missing: %v", body)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(string), "Row 2:")
}

func TestStartImportRunsBatch(t *testing.T) {
	app := testApp(t, stubRepository{})

	csvBody := "title,date,author,category,excerpt,content\n" +
		"Import Me,2025-06-01,Jane,Tax,Summary,Body\n"

	status, body := doJSON(t, app, csvUpload(t, csvBody))
	require.Equal(t, http.StatusAccepted, status)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, float64(1), body["total"])

	// The batch runs in the background; poll until it finishes.
	deadline := time.Now().Add(5 * time.Second)
	for {
		req := httptest.NewRequest("GET", "/api/v1/admin/import/"+id, nil)
		req.Header.Set("X-API-Key", adminKey)
		status, batch := doJSON(t, app, req)
		require.Equal(t, http.StatusOK, status)

		if batch["finished_at"] != nil {
			rows := batch["rows"].([]any)
			row := rows[0].(map[string]any)
			assert.Equal(t, "import-me", row["slug"])
			assert.Equal(t, float64(42), row["pr_number"])
			assert.Empty(t, row["error"])
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("batch did not finish in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStartImportWithoutPublisherConfigured(t *testing.T) {
	app := testApp(t, nil)
	status, _ := doJSON(t, app, csvUpload(t, "title,content\nT,Body\n"))
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestImportProgressUnknownBatch(t *testing.T) {
	app := testApp(t, stubRepository{})
	req := httptest.NewRequest("GET", "/api/v1/admin/import/unknown-id", nil)
	req.Header.Set("X-API-Key", adminKey)
	status, _ := doJSON(t, app, req)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRouteReturns404(t *testing.T) {
	app := testApp(t, nil)
	status, body := doJSON(t, app, httptest.NewRequest("GET", "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Endpoint not found", body["error"])
}
