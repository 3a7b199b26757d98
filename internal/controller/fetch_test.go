package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/newsdesk/internal/domain"
)

// fakeSource answers from fixed results, optionally blocking until released or ctx ends
type fakeSource struct {
	env     domain.Envelope
	err     error
	block   chan struct{}
	calls   chan Request
	lastCat domain.Category
	lastQ   string
}

func (f *fakeSource) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return domain.NewSourceError("fake", "fetch", ctx.Err())
	}
}

func (f *fakeSource) FetchByCategory(ctx context.Context, c domain.Category) (domain.Envelope, error) {
	f.lastCat = c
	if f.calls != nil {
		f.calls <- Request{Kind: KindCategory, Category: c}
	}
	if err := f.wait(ctx); err != nil {
		return domain.Envelope{}, err
	}
	return f.env, f.err
}

func (f *fakeSource) Search(ctx context.Context, q string) (domain.Envelope, error) {
	f.lastQ = q
	if f.calls != nil {
		f.calls <- Request{Kind: KindSearch, Query: q}
	}
	if err := f.wait(ctx); err != nil {
		return domain.Envelope{}, err
	}
	return f.env, f.err
}

func TestFetchSuccess(t *testing.T) {
	src := &fakeSource{env: domain.NewEnvelope(testArticles)}
	req := Request{Generation: 7, Kind: KindCategory, Category: domain.CategoryHealth}

	ev := Fetch(context.Background(), src, req, time.Second)

	ok, isOK := ev.(FetchSucceeded)
	if !isOK {
		t.Fatalf("Fetch() = %T, want FetchSucceeded", ev)
	}
	if ok.Generation != 7 || len(ok.Envelope.Articles) != 2 {
		t.Errorf("Fetch() = %+v", ok)
	}
	if src.lastCat != domain.CategoryHealth {
		t.Errorf("source got category %q", src.lastCat)
	}
}

func TestFetchSearchFailure(t *testing.T) {
	src := &fakeSource{err: domain.NewSourceError("fake", "search", errors.New("boom"))}
	req := Request{Generation: 3, Kind: KindSearch, Query: "climate"}

	ev := Fetch(context.Background(), src, req, time.Second)

	failed, ok := ev.(FetchFailed)
	if !ok {
		t.Fatalf("Fetch() = %T, want FetchFailed", ev)
	}
	if failed.Generation != 3 || failed.Message != MsgSearchFailed {
		t.Errorf("Fetch() = %+v", failed)
	}
	if src.lastQ != "climate" {
		t.Errorf("source got query %q", src.lastQ)
	}
}

func TestFetchCategoryFailureMessage(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	ev := Fetch(context.Background(), src, Request{Kind: KindCategory}, 0)

	if failed, ok := ev.(FetchFailed); !ok || failed.Message != MsgLoadFailed {
		t.Errorf("Fetch() = %+v, want load failure message", ev)
	}
}

func TestFetchTimeout(t *testing.T) {
	src := &fakeSource{block: make(chan struct{})}

	start := time.Now()
	ev := Fetch(context.Background(), src, Request{Generation: 1}, 20*time.Millisecond)

	failed, ok := ev.(FetchFailed)
	if !ok {
		t.Fatalf("Fetch() = %T, want FetchFailed", ev)
	}
	if failed.Message != MsgTimeout {
		t.Errorf("Message = %q, want timeout message", failed.Message)
	}
	if !errors.Is(failed.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, want deadline exceeded", failed.Err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Fetch() did not honor the timeout")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		kind RequestKind
		err  error
		want string
	}{
		{KindCategory, errors.New("x"), MsgLoadFailed},
		{KindSearch, errors.New("x"), MsgSearchFailed},
		{KindSearch, context.DeadlineExceeded, MsgTimeout},
		{KindCategory, domain.NewSourceError("s", "fetch", context.DeadlineExceeded), MsgTimeout},
	}
	for _, tt := range tests {
		if got := Message(tt.kind, tt.err); got != tt.want {
			t.Errorf("Message(%v, %v) = %q, want %q", tt.kind, tt.err, got, tt.want)
		}
	}
}
