package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/metrics"
)

type listingKind string

const (
	kindFeed   listingKind = "feed"
	kindSearch listingKind = "search"
)

// listingKey identifies the listing a cursor was issued for.
type listingKey struct {
	kind     listingKind
	category domain.Category
	query    string
}

func (k listingKey) String() string {
	if k.kind == kindSearch {
		return fmt.Sprintf("search %q sort=%s", k.query, k.category)
	}
	return fmt.Sprintf("feed %s", k.category)
}

// Call is the handle of one dispatched listing request.
// A nil *Call is a call that was never issued; it is already done.
type Call struct {
	done chan struct{}
	err  error
}

var closedCh = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func finished(err error) *Call {
	return &Call{done: closedCh, err: err}
}

func (c *Call) Done() <-chan struct{} {
	if c == nil {
		return closedCh
	}
	return c.done
}

// Wait blocks until the request settled and returns its outcome:
// nil when applied, ErrSuperseded when a newer request won, or the fetch error.
func (c *Call) Wait() error {
	if c == nil {
		return nil
	}
	<-c.done
	return c.err
}

// LoadFeed requests a category feed. An empty after asks for the first page
// and replaces the list, otherwise the page is appended.
func (s *Store) LoadFeed(ctx context.Context, category domain.Category, after string) *Call {
	key := listingKey{kind: kindFeed, category: category}
	q := domain.FeedQuery{Category: category, Subreddit: s.subreddit, Limit: s.limit, After: after}

	return s.dispatch(ctx, key, after, func(ctx context.Context) (domain.Page, error) {
		return s.source.FetchFeed(ctx, q)
	})
}

// Search requests a query listing with the same replace/append contract as LoadFeed.
func (s *Store) Search(ctx context.Context, query string, sort domain.Category, after string) *Call {
	key := listingKey{kind: kindSearch, category: sort, query: query}
	q := domain.SearchQuery{Query: query, Sort: sort, Limit: s.limit, After: after}

	return s.dispatch(ctx, key, after, func(ctx context.Context) (domain.Page, error) {
		return s.source.Search(ctx, q)
	})
}

// LoadMore continues the current listing with its stored cursor.
func (s *Store) LoadMore(ctx context.Context) *Call {
	s.mu.Lock()
	key, after := s.key, s.after
	s.mu.Unlock()

	if after == "" {
		return finished(ErrNoMorePages)
	}
	if key.kind == kindSearch {
		return s.Search(ctx, key.query, key.category, after)
	}
	return s.LoadFeed(ctx, key.category, after)
}

func (s *Store) dispatch(ctx context.Context, key listingKey, after string, fetch func(context.Context) (domain.Page, error)) *Call {
	s.mu.Lock()
	if after != "" && key != s.key {
		current := s.key
		s.mu.Unlock()

		metrics.ListingRequests.WithLabelValues(string(key.kind), metrics.OutcomeRejected).Inc()
		return finished(fmt.Errorf("%w: cursor for %s, listing is %s", ErrCursorMismatch, key, current))
	}
	if after != "" && after != s.after {
		current := s.after
		s.mu.Unlock()

		metrics.ListingRequests.WithLabelValues(string(key.kind), metrics.OutcomeRejected).Inc()
		return finished(fmt.Errorf("%w: stale cursor %q, current is %q", ErrCursorMismatch, after, current))
	}

	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.gen++
	gen := s.gen
	s.cancel = cancel
	s.status = domain.StatusLoading
	s.err = ""
	if after == "" {
		// a new listing starts; the old cursor must never be sent with it
		s.key = key
		s.after = ""
	}
	s.mu.Unlock()

	s.log.Debug("listing dispatched", "listing", key.String(), "after", after, "gen", gen)

	call := &Call{done: make(chan struct{})}
	go func() {
		defer close(call.done)
		defer cancel()

		page, err := fetch(ctx)
		call.err = s.settle(key, after, gen, page, err)
	}()
	return call
}

func (s *Store) settle(key listingKey, after string, gen uint64, page domain.Page, fetchErr error) error {
	kind := string(key.kind)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()

		metrics.ListingRequests.WithLabelValues(kind, metrics.OutcomeSuperseded).Inc()
		s.log.Debug("stale listing response dropped", "listing", key.String(), "gen", gen)
		return ErrSuperseded
	}
	s.cancel = nil

	if fetchErr != nil {
		// existing content stays, pagination stops
		s.status = domain.StatusFailed
		s.err = fetchErr.Error()
		s.after = ""
		s.mu.Unlock()

		metrics.ListingRequests.WithLabelValues(kind, metrics.OutcomeFailed).Inc()
		s.log.Warn("listing request failed", "listing", key.String(), "after", after, "err", fetchErr)
		return fmt.Errorf("%s: %w", key, fetchErr)
	}

	if after == "" {
		s.posts = slices.Clone(page.Posts)
	} else {
		s.posts = append(s.posts, page.Posts...)
	}
	s.after = page.After
	s.status = domain.StatusSucceeded
	total := len(s.posts)
	hook := s.onPage
	s.mu.Unlock()

	metrics.ListingRequests.WithLabelValues(kind, metrics.OutcomeSucceeded).Inc()
	s.log.Info("listing settled", "listing", key.String(), "received", len(page.Posts), "total", total, "has_more", page.After != "")

	if hook != nil && len(page.Posts) > 0 {
		hook(slices.Clone(page.Posts))
	}
	return nil
}
