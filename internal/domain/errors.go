package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArticle is returned by Validate for records missing a title or url.
	ErrInvalidArticle = errors.New("invalid article")

	// ErrUnknownCategory is returned by ParseCategory.
	ErrUnknownCategory = errors.New("unknown category")
)

// SourceError reports an upstream failure of an article source.
// It is the only error kind the controller maps to the Failed state.
type SourceError struct {
	Source string // "catalog", "newsapi", "rss"
	Op     string // "fetch" or "search"
	Code   string // upstream error code when known (ex: "rateLimited")
	Err    error
}

func (e *SourceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s failed (%s): %v", e.Source, e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Source, e.Op, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// NewSourceError wraps err unless it already is a *SourceError.
func NewSourceError(source, op string, err error) error {
	if err == nil {
		return nil
	}
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{Source: source, Op: op, Err: err}
}
