// Package view tracks what the user asked to see and turns changes of it into
// listing requests.
package view

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/store"
)

// Pipeline is the part of the store the coordinator drives.
type Pipeline interface {
	LoadFeed(ctx context.Context, category domain.Category, after string) *store.Call
	Search(ctx context.Context, query string, sort domain.Category, after string) *store.Call
}

type State struct {
	SearchTerm    string
	Category      domain.Category
	HasInteracted bool
	// RunSeq only grows; bumping it re-runs the current request unchanged
	RunSeq uint64
}

// Request is the listing a state resolves to: a search when Term is set,
// the category feed otherwise.
type Request struct {
	Term     string
	Category domain.Category
}

func (r Request) IsSearch() bool {
	return r.Term != ""
}

type Coordinator struct {
	pipeline Pipeline
	log      *slog.Logger

	mu    sync.Mutex
	state State
}

func New(pipeline Pipeline, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		pipeline: pipeline,
		log:      log,
		state:    State{Category: domain.DefaultCategory},
	}
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Visible reports whether content should be shown at all.
func (c *Coordinator) Visible() bool {
	return c.State().HasInteracted
}

// SetSearchTerm stores the trimmed term; a non-empty one counts as interaction.
func (c *Coordinator) SetSearchTerm(ctx context.Context, term string) *store.Call {
	return c.transition(ctx, func(s *State) {
		s.SearchTerm = strings.TrimSpace(term)
		if s.SearchTerm != "" {
			s.HasInteracted = true
		}
	})
}

// SetCategory switches the feed, or re-sorts the active search.
func (c *Coordinator) SetCategory(ctx context.Context, category domain.Category) *store.Call {
	return c.transition(ctx, func(s *State) {
		s.Category = category
		s.HasInteracted = true
	})
}

// Open sets term and category together and marks interaction, issuing a
// single request for the combined state.
func (c *Coordinator) Open(ctx context.Context, term string, category domain.Category) *store.Call {
	return c.transition(ctx, func(s *State) {
		s.SearchTerm = strings.TrimSpace(term)
		s.Category = category
		s.HasInteracted = true
	})
}

// Run re-issues the current request even when nothing changed.
func (c *Coordinator) Run(ctx context.Context) *store.Call {
	return c.transition(ctx, func(s *State) {
		s.RunSeq++
	})
}

func (c *Coordinator) MarkInteracted(ctx context.Context) *store.Call {
	return c.transition(ctx, func(s *State) {
		s.HasInteracted = true
	})
}

// Reset goes back to the bare start view. Fetched details are kept.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SearchTerm = ""
	c.state.Category = domain.DefaultCategory
	c.state.HasInteracted = false
}

// transition applies fn and, when the state changed and the user has
// interacted, dispatches exactly one first-page request for the new state.
// Dispatch happens under the lock so requests are issued in transition order.
func (c *Coordinator) transition(ctx context.Context, fn func(*State)) *store.Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	fn(&c.state)
	if c.state == prev || !c.state.HasInteracted {
		return nil
	}

	req := Request{Term: c.state.SearchTerm, Category: c.state.Category}
	c.log.Debug("view changed", "term", req.Term, "category", req.Category, "run", c.state.RunSeq)

	if req.IsSearch() {
		return c.pipeline.Search(ctx, req.Term, req.Category, "")
	}
	return c.pipeline.LoadFeed(ctx, req.Category, "")
}
