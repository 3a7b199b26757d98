package sources

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/metrics"
)

type validating struct {
	next   Source
	logger logger.Logger
}

// Validate wraps src so that records missing a title or url never reach the UI.
// Dropped records are logged and TotalCount shrinks accordingly.
func Validate(src Source, log logger.Logger) Source {
	return &validating{next: src, logger: log}
}

func (v *validating) FetchByCategory(ctx context.Context, category domain.Category) (domain.Envelope, error) {
	env, err := v.next.FetchByCategory(ctx, category)
	if err != nil {
		return env, err
	}
	return v.filter(env), nil
}

func (v *validating) Search(ctx context.Context, query string) (domain.Envelope, error) {
	env, err := v.next.Search(ctx, query)
	if err != nil {
		return env, err
	}
	return v.filter(env), nil
}

func (v *validating) filter(env domain.Envelope) domain.Envelope {
	kept := make([]domain.Article, 0, len(env.Articles))
	for _, a := range env.Articles {
		if err := domain.Validate(a); err != nil {
			v.logger.Warn("dropping malformed article",
				logger.String("url", a.URL),
				logger.String("title", a.Title),
				logger.Error(err))
			metrics.SourceArticlesDropped.WithLabelValues(dropReason(err)).Inc()
			continue
		}
		if a.ID == "" {
			a.ID = domain.NewArticleID(a.URL)
		}
		kept = append(kept, a)
	}

	dropped := len(env.Articles) - len(kept)
	total := env.TotalCount - dropped
	if total < len(kept) {
		total = len(kept)
	}

	return domain.Envelope{
		Status:     env.Status,
		TotalCount: total,
		Articles:   kept,
	}
}

func dropReason(err error) string {
	if errors.Is(err, domain.ErrInvalidArticle) {
		return "invalid"
	}
	return "unknown"
}
