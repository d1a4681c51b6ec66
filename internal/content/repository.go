package content

import (
	"strings"
	"sync"

	"github.com/clearledger/blogen/internal/models"
)

// FilterOptions narrows the post listing. Zero values mean "no filter".
type FilterOptions struct {
	Category     string
	Status       string
	Search       string
	FeaturedOnly bool
}

// Repository holds the loaded post collection in memory and serves all
// read operations. The collection is replaced wholesale on Reload.
type Repository struct {
	mu     sync.RWMutex
	loader *Loader
	posts  []models.BlogPost
}

func NewRepository(loader *Loader) *Repository {
	r := &Repository{loader: loader}
	r.Reload()
	return r
}

// Reload re-reads the content directory.
func (r *Repository) Reload() {
	posts := r.loader.Load()
	r.mu.Lock()
	r.posts = posts
	r.mu.Unlock()
}

// All returns every post, sorted date-descending.
func (r *Repository) All() []models.BlogPost {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.BlogPost, len(r.posts))
	copy(out, r.posts)
	return out
}

// Filter applies category, status, search-term and featured filters.
func (r *Repository) Filter(opts FilterOptions) []models.BlogPost {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.BlogPost
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	for _, post := range r.posts {
		if opts.Category != "" && opts.Category != "All" && post.Category != opts.Category {
			continue
		}
		if opts.Status != "" && post.Status != opts.Status {
			continue
		}
		if opts.FeaturedOnly && !post.Featured {
			continue
		}
		if search != "" && !matchesSearch(&post, search) {
			continue
		}
		out = append(out, post)
	}
	return out
}

// BySlug resolves one post by its slug.
func (r *Repository) BySlug(slug string) (models.BlogPost, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, post := range r.posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return models.BlogPost{}, false
}

// Related returns up to limit posts sharing a category or tag with the
// given post, excluding the post itself.
func (r *Repository) Related(slug string, limit int) []models.BlogPost {
	current, ok := r.BySlug(slug)
	if !ok {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.BlogPost
	for _, post := range r.posts {
		if post.Slug == current.Slug {
			continue
		}
		if !post.SharesTopicWith(&current) {
			continue
		}
		out = append(out, post)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Featured returns up to three featured posts.
func (r *Repository) Featured() []models.BlogPost {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.BlogPost
	for _, post := range r.posts {
		if post.Featured {
			out = append(out, post)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// Recent returns the most recent posts, up to limit.
func (r *Repository) Recent(limit int) []models.BlogPost {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit > len(r.posts) {
		limit = len(r.posts)
	}
	out := make([]models.BlogPost, limit)
	copy(out, r.posts[:limit])
	return out
}

func matchesSearch(post *models.BlogPost, search string) bool {
	if strings.Contains(strings.ToLower(post.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Excerpt), search) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}
