package store

import (
	"context"
	"fmt"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/ident"
	"github.com/qepting91/linkscape/internal/metrics"
)

// EnsureDetails makes sure the detail record for id is loaded and returns it.
//
// A succeeded record, remote or local, is returned as is. Otherwise a fetch is
// issued; callers overlapping an outstanding fetch for the same id wait for it
// instead of issuing their own. The fetch is not tied to any one caller: a
// caller whose ctx ends stops waiting, the fetch still settles into the cache.
// Failures stay on the record and never touch the list or the listing status.
func (s *Store) EnsureDetails(ctx context.Context, id string) (domain.Detail, error) {
	d, ok, epoch := s.succeededDetail(id)
	if ok {
		return d, nil
	}
	if !ident.IsRemotelyFetchable(id) {
		return domain.Detail{}, fmt.Errorf("%w: %s", ErrNotFetchable, id)
	}

	// flights of an epoch ended by Clear are never joined
	key := fmt.Sprintf("%d:%s", epoch, id)
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.flights.DoChan(key, func() (any, error) {
		return s.fetchDetail(fetchCtx, id, epoch)
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.log.Debug("joined outstanding detail fetch", "id", id)
		}
		return res.Val.(domain.Detail), res.Err
	case <-ctx.Done():
		d, _ := s.Detail(id)
		return d, ctx.Err()
	}
}

func (s *Store) succeededDetail(id string) (domain.Detail, bool, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.details[id]
	if !ok || d.Status != domain.StatusSucceeded {
		return domain.Detail{}, false, s.epoch
	}
	return copyDetail(d), true, s.epoch
}

func (s *Store) fetchDetail(ctx context.Context, id string, epoch uint64) (domain.Detail, error) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return domain.Detail{Status: domain.StatusIdle, Comments: []domain.Comment{}}, ErrSuperseded
	}
	// a flight that finished just before this one started may have filled it
	if d, ok := s.details[id]; ok && d.Status == domain.StatusSucceeded {
		defer s.mu.Unlock()
		return copyDetail(d), nil
	}
	s.details[id] = &domain.Detail{Status: domain.StatusLoading, Comments: []domain.Comment{}}
	s.mu.Unlock()

	details, err := s.source.FetchDetails(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return domain.Detail{Status: domain.StatusIdle, Comments: []domain.Comment{}}, ErrSuperseded
	}

	if err != nil {
		d := &domain.Detail{Status: domain.StatusFailed, Error: err.Error(), Comments: []domain.Comment{}}
		s.details[id] = d

		metrics.DetailFetches.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.log.Warn("detail fetch failed", "id", id, "err", err)
		return copyDetail(d), fmt.Errorf("details %s: %w", id, err)
	}

	d := &domain.Detail{Status: domain.StatusSucceeded, Selftext: details.Selftext, Comments: details.Comments}
	if d.Comments == nil {
		d.Comments = []domain.Comment{}
	}
	s.details[id] = d

	metrics.DetailFetches.WithLabelValues(metrics.OutcomeSucceeded).Inc()
	s.log.Debug("detail fetched", "id", id, "comments", len(d.Comments))
	return copyDetail(d), nil
}
