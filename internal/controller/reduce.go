package controller

import (
	"strings"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// Reduce applies ev to s and returns the next state, plus the request to
// perform when ev starts a fetch. It performs no I/O.
func Reduce(s State, ev Event) (State, *Request) {
	switch ev := ev.(type) {
	case CategorySelected:
		c := ev.Category
		if c == "" {
			c = domain.DefaultCategory
		}
		s.ActiveCategory = c
		s.SearchQuery = ""
		return begin(s, Request{Kind: KindCategory, Category: c})

	case SearchSubmitted:
		q := strings.TrimSpace(ev.Query)
		if q == "" {
			return s, nil
		}
		s.SearchQuery = q
		return begin(s, Request{Kind: KindSearch, Query: q})

	case FetchSucceeded:
		if !current(s, ev.Generation) {
			return s, nil
		}
		s.Phase = PhaseLoaded
		s.Articles = ev.Envelope.Articles
		s.TotalCount = ev.Envelope.TotalCount
		s.Err = ""
		if domain.IndexOf(s.Articles, s.SelectedID) < 0 {
			s.SelectedID = ""
		}

	case FetchFailed:
		if !current(s, ev.Generation) {
			return s, nil
		}
		s.Phase = PhaseFailed
		s.Err = ev.Message
		if s.Err == "" {
			s.Err = MsgLoadFailed
		}
		s.Articles = nil
		s.TotalCount = 0
		s.SelectedID = ""

	case ArticleSelected:
		if domain.IndexOf(s.Articles, ev.ID) >= 0 {
			s.SelectedID = ev.ID
		}

	case Dismissed:
		s.SelectedID = ""
	}

	return s, nil
}

// begin moves s to Loading under a new generation
func begin(s State, req Request) (State, *Request) {
	s.Generation++
	req.Generation = s.Generation

	s.Phase = PhaseLoading
	s.Err = ""
	s.LastRequest = req
	return s, &req
}

// current reports whether a result for gen may still be applied
func current(s State, gen uint64) bool {
	return s.Phase == PhaseLoading && gen == s.Generation
}
