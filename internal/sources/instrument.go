package sources

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/metrics"
)

type instrumented struct {
	next Source
	name string
}

// Instrument wraps src so every call is counted and timed under the given source name.
func Instrument(src Source, name string) Source {
	return &instrumented{next: src, name: name}
}

func (i *instrumented) FetchByCategory(ctx context.Context, category domain.Category) (domain.Envelope, error) {
	start := time.Now()
	env, err := i.next.FetchByCategory(ctx, category)
	metrics.RecordSourceCall(i.name, "fetch", err, time.Since(start))
	return env, err
}

func (i *instrumented) Search(ctx context.Context, query string) (domain.Envelope, error) {
	start := time.Now()
	env, err := i.next.Search(ctx, query)
	metrics.RecordSourceCall(i.name, "search", err, time.Since(start))
	return env, err
}
