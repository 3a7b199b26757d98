package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/controller"
	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

// PrintOptions selects what Print lists. A non-blank Query wins over Category.
type PrintOptions struct {
	Category domain.Category
	Query    string
	Timeout  time.Duration
	Now      func() time.Time
	Logger   logger.Logger
}

// Print runs one request through the article list controller and writes
// the resulting list to w, one article per line.
func Print(ctx context.Context, w io.Writer, src sources.Source, opts PrintOptions) error {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	ctrl := controller.New(src,
		controller.WithTimeout(opts.Timeout),
		controller.WithLogger(opts.Logger))

	if strings.TrimSpace(opts.Query) != "" {
		ctrl.SubmitSearch(ctx, opts.Query)
	} else {
		ctrl.SelectCategory(ctx, opts.Category)
	}
	ctrl.Wait()

	state := ctrl.State()
	if state.Phase == controller.PhaseFailed {
		return errors.New(state.Err)
	}

	if state.SearchActive() {
		fmt.Fprintf(w, "Found %d articles for %q\n\n", state.TotalCount, state.SearchQuery)
	} else {
		fmt.Fprintf(w, "%s · Found %d articles\n\n", state.ActiveCategory.DisplayName(), state.TotalCount)
	}

	if len(state.Articles) == 0 {
		fmt.Fprintln(w, "No articles found")
		return nil
	}

	now := opts.Now()
	for i, a := range state.Articles {
		fmt.Fprintf(w, "%2d. %s\n", i+1, a.Title)
		fmt.Fprintf(w, "    %s · %s\n", a.Source.Name, domain.RelativeTime(a.PublishedAt, now))
		fmt.Fprintf(w, "    %s\n", a.URL)
	}
	return nil
}
