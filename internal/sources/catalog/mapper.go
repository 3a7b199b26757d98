package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/index"
)

// queryPlaceholder is substituted in the search template
const queryPlaceholder = "{query}"

// Catalog is a mapped catalog file, ready to be indexed
type Catalog struct {
	Entries        []index.Entry
	SearchTemplate domain.Article
	Skipped        int // entries dropped because they could not be mapped
}

// Mapper converts catalog entries to domain articles
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// NewMapperAt creates a mapper resolving `age` entries against a fixed clock
func NewMapperAt(now func() time.Time) *Mapper {
	return &Mapper{now: now}
}

// Map converts a catalog File to indexable entries.
// Invalid entries are skipped; an error is returned when none remain.
func (m *Mapper) Map(file File) (Catalog, error) {
	now := m.now()
	out := Catalog{
		Entries: make([]index.Entry, 0, len(file.Articles)),
	}

	for _, e := range file.Articles {
		article, err := m.mapArticle(e, now)
		if err != nil {
			out.Skipped++
			continue
		}

		categories, err := parseCategories(e.Categories)
		if err != nil {
			out.Skipped++
			continue
		}

		out.Entries = append(out.Entries, index.Entry{
			Article:    article,
			Categories: categories,
		})
	}

	if len(out.Entries) == 0 {
		return Catalog{}, fmt.Errorf("no valid articles found in catalog")
	}

	out.SearchTemplate = mapTemplate(file.Search)
	return out, nil
}

func (m *Mapper) mapArticle(e ArticleEntry, now time.Time) (domain.Article, error) {
	a := domain.Article{
		URL:         strings.TrimSpace(e.URL),
		Source:      domain.SourceRef{ID: e.Source.ID, Name: e.Source.Name},
		Author:      e.Author,
		Title:       strings.TrimSpace(e.Title),
		Description: e.Description,
		ImageURL:    e.Image,
		Content:     e.Content,
	}
	if err := domain.Validate(a); err != nil {
		return domain.Article{}, err
	}

	// Skip unparseable links
	if u, err := url.Parse(a.URL); err != nil || u.Host == "" {
		return domain.Article{}, fmt.Errorf("%w: bad url %q", domain.ErrInvalidArticle, a.URL)
	}

	publishedAt, err := resolvePublishedAt(e, now)
	if err != nil {
		return domain.Article{}, err
	}
	a.PublishedAt = publishedAt
	a.ID = domain.NewArticleID(a.URL)

	return a, nil
}

// resolvePublishedAt reads published_at, falling back to age before now
// Example: age "90m" with now 12:00 -> 10:30
func resolvePublishedAt(e ArticleEntry, now time.Time) (time.Time, error) {
	if e.PublishedAt != "" {
		t, err := time.Parse(time.RFC3339, e.PublishedAt)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid published_at %q: %w", e.PublishedAt, err)
		}
		return t, nil
	}
	if e.Age != "" {
		d, err := time.ParseDuration(e.Age)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid age %q: %w", e.Age, err)
		}
		return now.Add(-d), nil
	}
	return now, nil
}

func parseCategories(raw []string) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(raw))
	for _, r := range raw {
		c, err := domain.ParseCategory(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func mapTemplate(e ArticleEntry) domain.Article {
	if strings.TrimSpace(e.Title) == "" {
		e.Title = "Search results for: " + queryPlaceholder
	}
	if strings.TrimSpace(e.URL) == "" {
		e.URL = "https://example.com/search?q=" + queryPlaceholder
	}
	return domain.Article{
		URL:         e.URL,
		Source:      domain.SourceRef{ID: e.Source.ID, Name: e.Source.Name},
		Author:      e.Author,
		Title:       e.Title,
		Description: e.Description,
		ImageURL:    e.Image,
		Content:     e.Content,
	}
}

// Synthesize fills the search template for query
func Synthesize(template domain.Article, query string, now time.Time) domain.Article {
	a := template
	a.Title = strings.ReplaceAll(template.Title, queryPlaceholder, query)
	a.Description = strings.ReplaceAll(template.Description, queryPlaceholder, query)
	a.Content = strings.ReplaceAll(template.Content, queryPlaceholder, query)
	a.URL = strings.ReplaceAll(template.URL, queryPlaceholder, url.QueryEscape(query))
	a.PublishedAt = now
	a.ID = domain.NewArticleID(a.URL)
	return a
}
