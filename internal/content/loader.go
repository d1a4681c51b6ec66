package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/clearledger/blogen/internal/logger"
	"github.com/clearledger/blogen/internal/models"
	"gopkg.in/yaml.v3"
)

// frontMatter mirrors the metadata block of a content file. Key names
// match what the editorial workflow commits.
type frontMatter struct {
	Title           string   `yaml:"title"`
	Status          string   `yaml:"status"`
	Date            string   `yaml:"date"`
	Author          string   `yaml:"author"`
	Category        string   `yaml:"category"`
	FeaturedImage   string   `yaml:"featuredImage"`
	ImageAlt        string   `yaml:"imageAlt"`
	Excerpt         string   `yaml:"excerpt"`
	SEOTitle        string   `yaml:"seoTitle"`
	MetaDescription string   `yaml:"metaDescription"`
	Tags            []string `yaml:"tags"`
	ReadingTime     string   `yaml:"readingTime"`
	Featured        bool     `yaml:"featured"`
}

// Loader reads markdown content files with front matter and normalizes
// them into BlogPost records.
type Loader struct {
	dir           string
	defaultAuthor string
}

func NewLoader(dir, defaultAuthor string) *Loader {
	return &Loader{dir: dir, defaultAuthor: defaultAuthor}
}

// Load reads every .md file in the content directory. Files that fail
// to parse are logged and skipped. If nothing loads, the built-in
// fallback set is returned so the site is never empty.
func (l *Loader) Load() []models.BlogPost {
	log := logger.Get()

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", l.dir).Msg("Content directory not readable, using fallback posts")
		return sortByDate(fallbackPosts())
	}

	var posts []models.BlogPost
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Error reading blog post")
			continue
		}

		post, err := l.Parse(entry.Name(), raw)
		if err != nil {
			log.Error().Err(err).Str("path", path).Msg("Error parsing blog post")
			continue
		}

		posts = append(posts, post)
	}

	if len(posts) == 0 {
		log.Warn().Msg("No markdown posts loaded, using fallback posts")
		return sortByDate(fallbackPosts())
	}

	return sortByDate(posts)
}

// Parse converts one markdown document into a BlogPost. The slug is
// taken from the filename. Posts on the default branch are published
// by definition under the editorial workflow.
func (l *Loader) Parse(filename string, raw []byte) (models.BlogPost, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: %w", filename, err)
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: invalid front matter: %w", filename, err)
	}

	date, err := ParseDate(fm.Date)
	if err != nil {
		return models.BlogPost{}, fmt.Errorf("%s: %w", filename, err)
	}

	author := fm.Author
	if author == "" {
		author = l.defaultAuthor
	}
	readingTime := fm.ReadingTime
	if readingTime == "" {
		readingTime = "5 min read"
	}

	return models.BlogPost{
		Slug:            strings.TrimSuffix(filename, ".md"),
		Title:           fm.Title,
		Date:            date,
		Author:          author,
		Category:        fm.Category,
		Excerpt:         fm.Excerpt,
		FeaturedImage:   fm.FeaturedImage,
		ImageAlt:        fm.ImageAlt,
		SEOTitle:        fm.SEOTitle,
		MetaDescription: fm.MetaDescription,
		Tags:            fm.Tags,
		ReadingTime:     readingTime,
		Featured:        fm.Featured,
		Status:          "published",
		Published:       true,
		Content:         body,
	}, nil
}

// splitFrontMatter separates the leading front-matter block from the
// markdown body.
func splitFrontMatter(raw []byte) ([]byte, string, error) {
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return nil, "", fmt.Errorf("missing front matter delimiter")
	}

	rest := text[len("---\n"):]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return nil, "", fmt.Errorf("unterminated front matter block")
	}

	meta := rest[:idx]
	body := rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	body = strings.TrimPrefix(body, "\n")
	return []byte(meta), body, nil
}

// ParseDate accepts the date formats editors actually supply: RFC3339
// timestamps (with or without fractional seconds) and plain dates.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}

func sortByDate(posts []models.BlogPost) []models.BlogPost {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts
}
