package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// Entry is an article together with the categories it is tagged with.
type Entry struct {
	Article    domain.Article
	Categories []domain.Category
}

// ArticleIndex provides in-memory storage and lookup for the article catalog.
// Load order is preserved and is the order every lookup returns.
type ArticleIndex struct {
	mu             sync.RWMutex
	articles       []domain.Article          // load order
	byCategory     map[domain.Category][]int // category -> positions in articles
	searchTemplate domain.Article            // used by catalog search
	lastReload     time.Time                 // Timestamp of last reload
}

// NewArticleIndex creates a new, empty article index
func NewArticleIndex() *ArticleIndex {
	return &ArticleIndex{
		byCategory: make(map[domain.Category][]int),
	}
}

// UpdateArticles replaces all articles in the index
func (idx *ArticleIndex) UpdateArticles(entries []Entry) {
	articles := make([]domain.Article, 0, len(entries))
	byCategory := make(map[domain.Category][]int)

	for _, e := range entries {
		pos := len(articles)
		articles = append(articles, e.Article)

		seen := make(map[domain.Category]bool, len(e.Categories))
		for _, c := range e.Categories {
			if c.IsGeneral() || seen[c] {
				continue
			}
			seen[c] = true
			byCategory[c] = append(byCategory[c], pos)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.articles = articles
	idx.byCategory = byCategory
	idx.lastReload = time.Now()
}

// SetSearchTemplate replaces the article synthesized for catalog searches
func (idx *ArticleIndex) SetSearchTemplate(a domain.Article) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.searchTemplate = a
}

// SearchTemplate returns the article synthesized for catalog searches
func (idx *ArticleIndex) SearchTemplate() domain.Article {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.searchTemplate
}

// All returns every article in load order
func (idx *ArticleIndex) All() []domain.Article {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.Article, len(idx.articles))
	copy(out, idx.articles)
	return out
}

// ByCategory returns the articles tagged with c, in load order.
// The general category is not a tag: it returns every article.
func (idx *ArticleIndex) ByCategory(c domain.Category) []domain.Article {
	if c.IsGeneral() {
		return idx.All()
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	positions := idx.byCategory[c]
	out := make([]domain.Article, 0, len(positions))
	for _, p := range positions {
		out = append(out, idx.articles[p])
	}
	return out
}

// Get retrieves an article by ID
func (idx *ArticleIndex) Get(id string) (domain.Article, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if i := domain.IndexOf(idx.articles, id); i >= 0 {
		return idx.articles[i], true
	}
	return domain.Article{}, false
}

// Count returns the number of articles in the index
func (idx *ArticleIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.articles)
}

// CategoryCounts returns the number of articles per tagged category
func (idx *ArticleIndex) CategoryCounts() map[domain.Category]int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[domain.Category]int, len(idx.byCategory))
	for c, positions := range idx.byCategory {
		out[c] = len(positions)
	}
	return out
}

// LastReload returns the timestamp of the last reload
func (idx *ArticleIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// Loaded reports whether at least one reload happened
func (idx *ArticleIndex) Loaded() bool {
	return !idx.LastReload().IsZero()
}
