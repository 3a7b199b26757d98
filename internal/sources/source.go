// Package sources defines the contract every article provider satisfies
// and the decorators layered on top of it.
package sources

import (
	"context"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// ErrEmptyQuery is returned by Search when the query is blank after trimming.
var ErrEmptyQuery = errors.New("empty search query")

// Source provides articles by category or by free-text search.
//
// Implementations are safe for concurrent use. Failures are reported as
// *domain.SourceError so callers can tell upstream failures from their own bugs.
type Source interface {
	// FetchByCategory returns the articles of one category.
	// The general category (or the zero value) means "no filter".
	FetchByCategory(ctx context.Context, category domain.Category) (domain.Envelope, error)

	// Search returns the articles matching a non-empty query.
	Search(ctx context.Context, query string) (domain.Envelope, error)
}

// Kind names the available Source implementations.
type Kind string

const (
	KindCatalog Kind = "catalog"
	KindNewsAPI Kind = "newsapi"
	KindRSS     Kind = "rss"
)

// ParseKind parses a source name, case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCatalog, KindNewsAPI, KindRSS:
		return k, true
	default:
		return "", false
	}
}

// NormalizeQuery trims q and reports ErrEmptyQuery when nothing is left.
func NormalizeQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return q, nil
}
