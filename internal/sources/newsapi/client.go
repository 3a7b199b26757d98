// Package newsapi is an article source backed by a NewsAPI-compatible HTTP API.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/metrics"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
	"github.com/MrSnakeDoc/newsdesk/internal/utils"
	"github.com/MrSnakeDoc/newsdesk/internal/version"
)

const (
	sourceName = "newsapi"

	// DefaultBaseURL is the public NewsAPI endpoint
	DefaultBaseURL = "https://newsapi.org/v2"

	// maxBodyBytes caps how much of a response body is read
	maxBodyBytes = 4 << 20
)

// Config holds the client settings
type Config struct {
	BaseURL  string
	APIKey   string
	Country  string  // top-headlines country, "us" when empty
	PageSize int     // 0 leaves the upstream default
	Rate     float64 // requests per second, 0 disables client-side limiting
	Burst    int

	HTTPClient *http.Client
	Retry      RetryConfig
	Logger     logger.Logger
}

// Client implements sources.Source over HTTP
type Client struct {
	baseURL  string
	apiKey   string
	country  string
	pageSize int

	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	retry   RetryConfig
	logger  logger.Logger
}

var _ sources.Source = (*Client)(nil)

// New creates a new NewsAPI client
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = DefaultRetryConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		country:  cfg.Country,
		pageSize: cfg.PageSize,
		http:     cfg.HTTPClient,
		limiter:  rate.NewLimiter(limit, burst),
		retry:    cfg.Retry,
		logger:   cfg.Logger.With(logger.String("source", sourceName)),
	}
	c.breaker = newBreaker(c.logger)
	return c
}

func newBreaker(log logger.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        sourceName,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Client mistakes and cancellations say nothing about upstream health
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				return !isRetryableStatus(statusErr.StatusCode)
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				logger.String("circuit", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}

// FetchByCategory calls /top-headlines. The general category sends no filter.
func (c *Client) FetchByCategory(ctx context.Context, category domain.Category) (domain.Envelope, error) {
	params := url.Values{}
	params.Set("country", c.country)
	if !category.IsGeneral() {
		params.Set("category", string(category))
	}
	c.setPageSize(params)

	return c.get(ctx, "fetch", "/top-headlines", params)
}

// Search calls /everything, newest first
func (c *Client) Search(ctx context.Context, query string) (domain.Envelope, error) {
	q, err := sources.NormalizeQuery(query)
	if err != nil {
		return domain.Envelope{}, err
	}

	params := url.Values{}
	params.Set("q", q)
	params.Set("sortBy", "publishedAt")
	c.setPageSize(params)

	return c.get(ctx, "search", "/everything", params)
}

func (c *Client) setPageSize(params url.Values) {
	if c.pageSize > 0 {
		params.Set("pageSize", strconv.Itoa(c.pageSize))
	}
}

func (c *Client) get(ctx context.Context, op, path string, params url.Values) (domain.Envelope, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	var resp Response
	err := withBackoff(ctx, c.retry, c.logger, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.do(ctx, endpoint)
		})
		if err != nil {
			return err
		}
		resp = result.(Response)
		return nil
	})
	if err != nil {
		c.logger.Warn("newsapi request failed",
			logger.String("op", op),
			logger.String("path", path),
			logger.Error(err))
		return domain.Envelope{}, sourceError(op, err)
	}

	articles := make([]domain.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, a.ToDomain())
	}

	total := resp.TotalResults
	if total < len(articles) {
		total = len(articles)
	}
	return domain.Envelope{
		Status:     domain.StatusOK,
		TotalCount: total,
		Articles:   articles,
	}, nil
}

// do performs one HTTP round trip without retry or circuit breaker
func (c *Client) do(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer utils.MustClose(res.Body, c.logger)

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	var decoded Response
	decodeErr := json.Unmarshal(body, &decoded)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		if decodeErr == nil && decoded.Code != "" {
			statusErr.Code = decoded.Code
			statusErr.Message = decoded.Message
		}
		return Response{}, statusErr
	}

	if decodeErr != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if decoded.Status != string(domain.StatusOK) {
		return Response{}, &StatusError{StatusCode: res.StatusCode, Code: decoded.Code, Message: decoded.Message}
	}

	return decoded, nil
}

func sourceError(op string, err error) error {
	se := &domain.SourceError{Source: sourceName, Op: op, Err: err}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		se.Code = statusErr.Code
	}
	if errors.Is(err, gobreaker.ErrOpenState) {
		se.Code = "circuitOpen"
	}
	return se
}
