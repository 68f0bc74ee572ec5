package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qepting91/linkscape/internal/domain"
)

var errBoom = errors.New("boom")

// fakeSource serves canned pages keyed by "feed:<category>:<after>" or
// "search:<query>:<sort>:<after>" and "details:<id>". A gate registered for a
// key blocks the call until it is closed.
type fakeSource struct {
	mu      sync.Mutex
	pages   map[string]domain.Page
	details map[string]domain.Details
	errs    map[string]error
	gates   map[string]chan struct{}
	started map[string]chan struct{}
	calls   map[string]int

	// ignoreCancel makes gated calls answer even after their context ended
	ignoreCancel bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:   map[string]domain.Page{},
		details: map[string]domain.Details{},
		errs:    map[string]error{},
		gates:   map[string]chan struct{}{},
		started: map[string]chan struct{}{},
		calls:   map[string]int{},
	}
}

func feedKey(c domain.Category, after string) string { return fmt.Sprintf("feed:%s:%s", c, after) }

func searchKey(q string, sort domain.Category, after string) string {
	return fmt.Sprintf("search:%s:%s:%s", q, sort, after)
}

func detailsKey(id string) string { return "details:" + id }

// gate blocks key until the returned channel is closed, and exposes a
// channel closed once the call started.
func (f *fakeSource) gate(key string) (release chan struct{}, started <-chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	release = make(chan struct{})
	st := make(chan struct{})
	f.gates[key] = release
	f.started[key] = st
	return release, st
}

func (f *fakeSource) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeSource) serve(ctx context.Context, key string) error {
	f.mu.Lock()
	f.calls[key]++
	gate := f.gates[key]
	if st, ok := f.started[key]; ok {
		close(st)
		delete(f.started, key)
	}
	err := f.errs[key]
	f.mu.Unlock()

	if gate != nil {
		if f.ignoreCancel {
			<-gate
		} else {
			select {
			case <-gate:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return err
}

func (f *fakeSource) FetchFeed(ctx context.Context, q domain.FeedQuery) (domain.Page, error) {
	key := feedKey(q.Category, q.After)
	if err := f.serve(ctx, key); err != nil {
		return domain.Page{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[key], nil
}

func (f *fakeSource) Search(ctx context.Context, q domain.SearchQuery) (domain.Page, error) {
	key := searchKey(q.Query, q.Sort, q.After)
	if err := f.serve(ctx, key); err != nil {
		return domain.Page{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pages[key], nil
}

func (f *fakeSource) FetchDetails(ctx context.Context, id string) (domain.Details, error) {
	key := detailsKey(id)
	if err := f.serve(ctx, key); err != nil {
		return domain.Details{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details[key], nil
}

func posts(ids ...string) []domain.Post {
	out := make([]domain.Post, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Post{ID: id, Title: "title " + id, Subreddit: "r/test"})
	}
	return out
}

func ids(ps []domain.Post) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}
