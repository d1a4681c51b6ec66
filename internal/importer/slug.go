package importer

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Slugify derives a URL-safe identifier from a post title: lower-case,
// strip characters outside [a-z0-9 -], collapse whitespace and hyphen
// runs to single hyphens, trim leading/trailing hyphens.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// AllocateBranch resolves a collision-free branch name for the slug in
// the remote branch namespace. If <prefix><slug> is taken, numeric
// suffixes starting at 2 are tried until an unused name is found.
// Existence-check failures propagate; availability is never assumed.
func AllocateBranch(ctx context.Context, repo Repository, prefix, slug string) (string, string, error) {
	candidate := slug
	for suffix := 2; ; suffix++ {
		branch := prefix + candidate
		exists, err := repo.BranchExists(ctx, branch)
		if err != nil {
			return "", "", fmt.Errorf("failed to check branch %s: %w", branch, err)
		}
		if !exists {
			return candidate, branch, nil
		}
		candidate = fmt.Sprintf("%s-%d", slug, suffix)
	}
}
