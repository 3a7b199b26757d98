package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Article represents a single news item as the UI sees it.
//
// It is NOT tied to NewsAPI, RSS or the static catalog.
// Every source maps its own records into this structure.
//
// Articles are values: once produced by a source they are never mutated.
type Article struct {
	// ─────────────────────────────
	// Identity
	// ─────────────────────────────

	// ID is derived from URL (see NewArticleID).
	// Two records with the same canonical URL share an ID.
	ID string

	// URL is the canonical link to the full article. Required.
	URL string

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// Source is the publisher of the article.
	Source SourceRef

	// Author is optional.
	Author string

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is required and non-empty.
	Title string

	// Description is an optional short summary.
	Description string

	// ImageURL is optional. Renderers fall back to PlaceholderImageURL.
	ImageURL string

	// Content is the optional body preview. It may end with a
	// truncation marker such as "[+1234 chars]" (see CleanContent).
	Content string

	// PublishedAt is only used for relative-time display.
	PublishedAt time.Time
}

// SourceRef identifies the publisher of an article.
type SourceRef struct {
	ID   string // optional, "" when the upstream has none
	Name string
}

// Status is the outcome reported in an Envelope.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// Envelope wraps the result of a fetch or search.
type Envelope struct {
	Status     Status
	TotalCount int
	Articles   []Article
}

// NewEnvelope builds an ok envelope whose TotalCount matches the list length.
func NewEnvelope(articles []Article) Envelope {
	if articles == nil {
		articles = []Article{}
	}
	return Envelope{
		Status:     StatusOK,
		TotalCount: len(articles),
		Articles:   articles,
	}
}

// NewArticleID returns a stable identifier for a canonical article URL.
func NewArticleID(url string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.TrimSpace(url))).String()
}

// Validate rejects records that cannot be displayed (missing title or url).
func Validate(a Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidArticle)
	}
	if strings.TrimSpace(a.URL) == "" {
		return fmt.Errorf("%w: missing url", ErrInvalidArticle)
	}
	return nil
}

// IndexOf returns the position of the article with the given ID, or -1.
func IndexOf(articles []Article, id string) int {
	if id == "" {
		return -1
	}
	for i := range articles {
		if articles[i].ID == id {
			return i
		}
	}
	return -1
}
