package newsapi

import (
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// Response is the NewsAPI response envelope.
// On errors Status is "error" and Code/Message are set.
type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}

// Article is a NewsAPI article record
type Article struct {
	Source      Source  `json:"source"`
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}

// Source is the publisher reference of a NewsAPI article
type Source struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// ToDomain maps a wire record to a domain article
func (a Article) ToDomain() domain.Article {
	out := domain.Article{
		URL:         a.URL,
		Source:      domain.SourceRef{ID: deref(a.Source.ID), Name: a.Source.Name},
		Author:      deref(a.Author),
		Title:       a.Title,
		Description: deref(a.Description),
		ImageURL:    deref(a.URLToImage),
		Content:     deref(a.Content),
	}
	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		out.PublishedAt = t
	}
	if out.URL != "" {
		out.ID = domain.NewArticleID(out.URL)
	}
	return out
}

// FromDomain maps a domain article to its wire record
func FromDomain(a domain.Article) Article {
	out := Article{
		Source:      Source{ID: ptr(a.Source.ID), Name: a.Source.Name},
		Author:      ptr(a.Author),
		Title:       a.Title,
		Description: ptr(a.Description),
		URL:         a.URL,
		URLToImage:  ptr(a.ImageURL),
		Content:     ptr(a.Content),
	}
	if !a.PublishedAt.IsZero() {
		out.PublishedAt = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	return out
}

// FromEnvelope builds an ok response from a domain envelope
func FromEnvelope(env domain.Envelope) Response {
	articles := make([]Article, 0, len(env.Articles))
	for _, a := range env.Articles {
		articles = append(articles, FromDomain(a))
	}
	return Response{
		Status:       string(domain.StatusOK),
		TotalResults: env.TotalCount,
		Articles:     articles,
	}
}

// ErrorResponse builds an error response
func ErrorResponse(code, message string) Response {
	return Response{
		Status:  string(domain.StatusError),
		Code:    code,
		Message: message,
	}
}

// NewsAPI error codes used by this module
const (
	CodeArticleNotFound   = "articleNotFound"
	CodeParameterInvalid  = "parameterInvalid"
	CodeParametersMissing = "parametersMissing"
	CodeRateLimited       = "rateLimited"
	CodeUnexpectedError   = "unexpectedError"
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ptr returns nil for "" so optional fields encode as JSON null
func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
