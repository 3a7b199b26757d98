package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/metrics"
)

type stubSource struct {
	env domain.Envelope
	err error
}

func (s *stubSource) FetchByCategory(context.Context, domain.Category) (domain.Envelope, error) {
	return s.env, s.err
}

func (s *stubSource) Search(context.Context, string) (domain.Envelope, error) {
	return s.env, s.err
}

func TestValidateDropsMalformedArticles(t *testing.T) {
	stub := &stubSource{env: domain.Envelope{
		Status:     domain.StatusOK,
		TotalCount: 40,
		Articles: []domain.Article{
			{Title: "Good", URL: "https://example.com/good"},
			{Title: "", URL: "https://example.com/untitled"},
			{Title: "No link"},
		},
	}}

	env, err := Validate(stub, logger.NewNop()).FetchByCategory(context.Background(), domain.CategoryGeneral)
	require.NoError(t, err)

	require.Len(t, env.Articles, 1)
	assert.Equal(t, "Good", env.Articles[0].Title)
	assert.Equal(t, 38, env.TotalCount)
	assert.Equal(t, domain.NewArticleID("https://example.com/good"), env.Articles[0].ID)
}

func TestValidateKeepsTotalCountConsistent(t *testing.T) {
	stub := &stubSource{env: domain.Envelope{
		Status:     domain.StatusOK,
		TotalCount: 2,
		Articles: []domain.Article{
			{Title: "A", URL: "https://example.com/a"},
			{Title: "", URL: "https://example.com/b"},
		},
	}}

	env, err := Validate(stub, logger.NewNop()).Search(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 1, env.TotalCount)
	assert.Len(t, env.Articles, 1)
}

func TestValidateKeepsExistingID(t *testing.T) {
	stub := &stubSource{env: domain.NewEnvelope([]domain.Article{
		{ID: "fixed", Title: "A", URL: "https://example.com/a"},
	})}

	env, err := Validate(stub, logger.NewNop()).Search(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "fixed", env.Articles[0].ID)
}

func TestValidatePassesErrorsThrough(t *testing.T) {
	want := domain.NewSourceError("stub", "fetch", errors.New("boom"))
	stub := &stubSource{err: want}

	_, err := Validate(stub, logger.NewNop()).FetchByCategory(context.Background(), domain.CategoryHealth)
	assert.ErrorIs(t, err, want)
}

func TestInstrumentRecordsCalls(t *testing.T) {
	ok := Instrument(&stubSource{env: domain.NewEnvelope(nil)}, "instrument-test")
	failing := Instrument(&stubSource{err: errors.New("boom")}, "instrument-test")

	before := testutil.ToFloat64(metrics.SourceRequestsTotal.WithLabelValues("instrument-test", "fetch", "ok"))
	_, err := ok.FetchByCategory(context.Background(), domain.CategoryGeneral)
	require.NoError(t, err)
	after := testutil.ToFloat64(metrics.SourceRequestsTotal.WithLabelValues("instrument-test", "fetch", "ok"))
	assert.Equal(t, before+1, after)

	_, err = failing.Search(context.Background(), "q")
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SourceRequestsTotal.WithLabelValues("instrument-test", "search", "error")))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		ok    bool
	}{
		{"catalog", KindCatalog, true},
		{" NewsAPI ", KindNewsAPI, true},
		{"rss", KindRSS, true},
		{"kafka", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestNormalizeQuery(t *testing.T) {
	q, err := NormalizeQuery("  climate  ")
	require.NoError(t, err)
	assert.Equal(t, "climate", q)

	_, err = NormalizeQuery(" \t ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
