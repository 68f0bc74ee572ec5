// Package store is the client-side state container: the shared post list, the
// status and cursor of the current listing, and the per-post detail records.
//
// All mutation goes through the Store's methods. Listing requests are
// generation-stamped at dispatch; a request that is no longer the newest when
// it settles is dropped without touching state.
package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/qepting91/linkscape/internal/domain"
)

var (
	ErrSuperseded     = errors.New("request superseded by a newer one")
	ErrCursorMismatch = errors.New("cursor does not belong to the current listing")
	ErrNoMorePages    = errors.New("no more pages")
	ErrNotFetchable   = errors.New("post id cannot be fetched remotely")
)

const defaultLimit = 25

// Snapshot is a copy of the list state handed to the rendering layer.
type Snapshot struct {
	Posts  []domain.Post
	Status domain.Status
	Error  string
	After  string
}

// HasMore reports whether a "load more" is possible.
func (s Snapshot) HasMore() bool {
	return s.After != ""
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithLimit sets the page size sent with every listing request.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithSubreddit scopes category feeds to one subreddit.
func WithSubreddit(name string) Option {
	return func(s *Store) { s.subreddit = name }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithPageHook registers fn to receive the posts of every applied remote page.
// It is called outside the store lock.
func WithPageHook(fn func([]domain.Post)) Option {
	return func(s *Store) { s.onPage = fn }
}

type Store struct {
	source    domain.Source
	log       *slog.Logger
	limit     int
	subreddit string
	now       func() time.Time
	onPage    func([]domain.Post)

	mu     sync.Mutex
	posts  []domain.Post
	status domain.Status
	err    string
	key    listingKey
	after  string

	gen    uint64
	cancel context.CancelFunc

	details   map[string]*domain.Detail
	epoch     uint64
	flights   singleflight.Group
	lastLocal int64
}

func New(source domain.Source, opts ...Option) *Store {
	s := &Store{
		source:  source,
		log:     slog.Default(),
		limit:   defaultLimit,
		now:     time.Now,
		status:  domain.StatusIdle,
		details: make(map[string]*domain.Detail),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Posts:  slices.Clone(s.posts),
		Status: s.status,
		Error:  s.err,
		After:  s.after,
	}
}

// Post looks up a post of the shared list by id.
func (s *Store) Post(id string) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == id })
	if i < 0 {
		return domain.Post{}, false
	}
	return s.posts[i], true
}

// Detail returns a copy of the detail record for id, if one exists.
func (s *Store) Detail(id string) (domain.Detail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.details[id]
	if !ok {
		return domain.Detail{}, false
	}
	return copyDetail(d), true
}

// Clear drops the list, the cursor and every detail record, and cancels
// outstanding listing work. Detail fetches still in flight are discarded
// when they settle.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.epoch++
	s.posts = nil
	s.status = domain.StatusIdle
	s.err = ""
	s.key = listingKey{}
	s.after = ""
	s.details = make(map[string]*domain.Detail)
}

func copyDetail(d *domain.Detail) domain.Detail {
	c := *d
	c.Comments = slices.Clone(d.Comments)
	if c.Comments == nil {
		c.Comments = []domain.Comment{}
	}
	return c
}
