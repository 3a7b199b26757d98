package controller

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

// User-facing failure messages
const (
	MsgLoadFailed   = "Failed to load news. Please try again later."
	MsgSearchFailed = "Failed to search news. Please try again."
	MsgTimeout      = "The news service took too long to respond. Please try again."
)

// Fetch performs req against src and converts the outcome to an event for Reduce.
// A timeout <= 0 leaves ctx as the only bound.
func Fetch(ctx context.Context, src sources.Source, req Request, timeout time.Duration) Event {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var err error
	var ev FetchSucceeded
	ev.Generation = req.Generation

	switch req.Kind {
	case KindSearch:
		ev.Envelope, err = src.Search(ctx, req.Query)
	default:
		ev.Envelope, err = src.FetchByCategory(ctx, req.Category)
	}

	if err != nil {
		return FetchFailed{
			Generation: req.Generation,
			Message:    Message(req.Kind, err),
			Err:        err,
		}
	}
	return ev
}

// Message maps a fetch error to the text shown to the user
func Message(kind RequestKind, err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimeout
	}
	if kind == KindSearch {
		return MsgSearchFailed
	}
	return MsgLoadFailed
}
