package importer

import (
	"context"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Sample Blog Post Title", "sample-blog-post-title"},
		{"RSU Tax Planning: What You Need to Know!", "rsu-tax-planning-what-you-need-to-know"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Multiple   spaces --- and hyphens", "multiple-spaces-and-hyphens"},
		{"100% Deductible?", "100-deductible"},
		{"---", ""},
		{"Ünïcödé Çhars", "ncd-hars"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestSlugifyCharset(t *testing.T) {
	slug := Slugify("A Wild & CRAZY Title!! (2025 edition)")
	for _, r := range slug {
		valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			t.Fatalf("slug %q contains invalid rune %q", slug, r)
		}
	}
	if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
		t.Errorf("slug %q has leading or trailing hyphen", slug)
	}
	if strings.Contains(slug, "--") {
		t.Errorf("slug %q contains a double hyphen", slug)
	}
}

type fakeBranchChecker struct {
	mockRepository
	taken map[string]bool
}

func (f *fakeBranchChecker) BranchExists(_ context.Context, branch string) (bool, error) {
	return f.taken[branch], nil
}

func TestAllocateBranchFirstFree(t *testing.T) {
	repo := &fakeBranchChecker{taken: map[string]bool{}}
	slug, branch, err := AllocateBranch(context.Background(), repo, "cms/blog/", "my-post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "my-post" || branch != "cms/blog/my-post" {
		t.Errorf("got (%q, %q), want (my-post, cms/blog/my-post)", slug, branch)
	}
}

func TestAllocateBranchSkipsTakenNames(t *testing.T) {
	repo := &fakeBranchChecker{taken: map[string]bool{
		"cms/blog/my-post":   true,
		"cms/blog/my-post-2": true,
	}}
	slug, branch, err := AllocateBranch(context.Background(), repo, "cms/blog/", "my-post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slug != "my-post-3" || branch != "cms/blog/my-post-3" {
		t.Errorf("got (%q, %q), want (my-post-3, cms/blog/my-post-3)", slug, branch)
	}
}
