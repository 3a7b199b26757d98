package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
	"github.com/MrSnakeDoc/newsdesk/internal/logger"
	"github.com/MrSnakeDoc/newsdesk/internal/sources"
)

// DefaultTimeout bounds every fetch unless WithTimeout says otherwise
const DefaultTimeout = 10 * time.Second

// Controller runs Reduce for callers without their own event loop.
// Every transition happens under one mutex; fetches run on goroutines
// and come back as events.
type Controller struct {
	src     sources.Source
	timeout time.Duration
	logger  logger.Logger

	mu       sync.Mutex
	state    State
	inflight context.CancelFunc
	subs     map[int]chan State
	nextSub  int

	startOnce sync.Once
	wg        sync.WaitGroup
}

// Option configures a Controller
type Option func(*Controller)

// WithTimeout bounds each fetch. d <= 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the logger used for transitions and failures
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller in the Initial state
func New(src sources.Source, opts ...Option) *Controller {
	c := &Controller{
		src:     src,
		timeout: DefaultTimeout,
		logger:  logger.NewNop(),
		state:   Initial(),
		subs:    make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start loads the default category. Only the first call has an effect.
func (c *Controller) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		c.SelectCategory(ctx, domain.DefaultCategory)
	})
}

// SelectCategory clears any search and loads category
func (c *Controller) SelectCategory(ctx context.Context, category domain.Category) {
	c.dispatch(ctx, CategorySelected{Category: category})
}

// SubmitSearch searches for query. Blank queries change nothing.
func (c *Controller) SubmitSearch(ctx context.Context, query string) {
	c.dispatch(ctx, SearchSubmitted{Query: query})
}

// SelectArticle opens the article with id when it is in the current list
func (c *Controller) SelectArticle(id string) {
	c.dispatch(context.Background(), ArticleSelected{ID: id})
}

// Dismiss closes the opened article
func (c *Controller) Dismiss() {
	c.dispatch(context.Background(), Dismissed{})
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Subscribe returns a channel receiving the state after every transition.
// Slow readers only see the latest state. cancel stops delivery and closes the channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan State, 1)
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Wait blocks until every in-flight fetch has been applied
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) dispatch(ctx context.Context, ev Event) {
	c.mu.Lock()
	prev := c.state
	next, req := Reduce(prev, ev)
	c.state = next

	var (
		fetchCtx context.Context
		cancel   context.CancelFunc
	)
	if req != nil {
		// A newer request makes the previous one pointless
		if c.inflight != nil {
			c.inflight()
		}
		fetchCtx, cancel = context.WithCancel(ctx)
		c.inflight = cancel
		c.wg.Add(1)
	}

	if changed(prev, next) {
		c.logger.Debug("article list transition",
			logger.String("event", eventName(ev)),
			logger.String("from", prev.Phase.String()),
			logger.String("to", next.Phase.String()),
			logger.Uint64("generation", next.Generation),
			logger.Int("articles", len(next.Articles)))
		c.publish(next)
	}
	c.mu.Unlock()

	if req != nil {
		go c.run(fetchCtx, cancel, *req)
	}
}

func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, req Request) {
	defer c.wg.Done()
	defer cancel()

	ev := Fetch(ctx, c.src, req, c.timeout)
	if failed, ok := ev.(FetchFailed); ok && !errors.Is(failed.Err, context.Canceled) {
		c.logger.Warn("article request failed",
			logger.String("kind", req.Kind.String()),
			logger.Uint64("generation", req.Generation),
			logger.Error(failed.Err))
	}
	c.dispatch(context.Background(), ev)
}

// publish hands s to every subscriber, replacing any unread state. Caller holds mu.
func (c *Controller) publish(s State) {
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// changed reports whether a transition is visible to subscribers
func changed(prev, next State) bool {
	return prev.Phase != next.Phase ||
		prev.Generation != next.Generation ||
		prev.SelectedID != next.SelectedID
}

func eventName(ev Event) string {
	switch ev.(type) {
	case CategorySelected:
		return "category_selected"
	case SearchSubmitted:
		return "search_submitted"
	case FetchSucceeded:
		return "fetch_succeeded"
	case FetchFailed:
		return "fetch_failed"
	case ArticleSelected:
		return "article_selected"
	case Dismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}
