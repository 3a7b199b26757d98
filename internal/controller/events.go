package controller

import (
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

// CategorySelected switches to a category and clears any search.
type CategorySelected struct {
	Category domain.Category
}

// SearchSubmitted starts a search. Blank queries are ignored.
type SearchSubmitted struct {
	Query string
}

// FetchSucceeded delivers the result of the request with the same Generation.
type FetchSucceeded struct {
	Generation uint64
	Envelope   domain.Envelope
}

// FetchFailed reports the failure of the request with the same Generation.
type FetchFailed struct {
	Generation uint64
	Message    string
	Err        error
}

// ArticleSelected opens an article of the current list.
type ArticleSelected struct {
	ID string
}

// Dismissed closes the opened article.
type Dismissed struct{}

func (CategorySelected) event() {}
func (SearchSubmitted) event()  {}
func (FetchSucceeded) event()   {}
func (FetchFailed) event()      {}
func (ArticleSelected) event()  {}
func (Dismissed) event()        {}
