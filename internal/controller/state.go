// Package controller owns the article list state: which articles are shown,
// whether a request is in flight, the last error and the opened article.
//
// State changes only through Reduce. Controller drives Reduce from
// goroutines for callers that are not already event loops.
package controller

import (
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// Phase is the lifecycle step of the article list.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestKind tells category fetches from searches.
type RequestKind int

const (
	KindCategory RequestKind = iota
	KindSearch
)

func (k RequestKind) String() string {
	if k == KindSearch {
		return "search"
	}
	return "category"
}

// Request is a fetch the reducer asks its driver to perform.
// Its Generation must come back on the resulting FetchSucceeded or FetchFailed.
type Request struct {
	Generation uint64
	Kind       RequestKind
	Category   domain.Category
	Query      string
}

// State is the article list as the UI renders it.
type State struct {
	Phase      Phase
	Articles   []domain.Article
	TotalCount int
	Err        string // user-facing message, set only in PhaseFailed

	ActiveCategory domain.Category
	SearchQuery    string // "" when no search is active
	SelectedID     string // article opened in the detail view, "" when closed

	// Generation identifies the latest request. Results carrying an older one are dropped.
	Generation  uint64
	LastRequest Request
}

// Initial returns the state before the first request.
func Initial() State {
	return State{
		Phase:          PhaseIdle,
		ActiveCategory: domain.DefaultCategory,
	}
}

// Loading reports whether a request is in flight.
func (s State) Loading() bool { return s.Phase == PhaseLoading }

// SearchActive reports whether the list shows search results.
func (s State) SearchActive() bool { return s.SearchQuery != "" }

// Selected returns the opened article, if it is still in the list.
func (s State) Selected() (domain.Article, bool) {
	if i := domain.IndexOf(s.Articles, s.SelectedID); i >= 0 {
		return s.Articles[i], true
	}
	return domain.Article{}, false
}
