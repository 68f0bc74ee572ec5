package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/qepting91/linkscape/internal/collector"
	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/ident"
	"github.com/qepting91/linkscape/internal/store"
	"github.com/qepting91/linkscape/internal/view"
)

// reader is the terminal rendering of a session
type reader struct {
	store *store.Store
	out   io.Writer
	log   *slog.Logger
}

// openDetails loads details for the first n navigable posts, at most
// workers at a time. Failures stay on their record.
func (r *reader) openDetails(ctx context.Context, n, workers int) {
	if n <= 0 {
		return
	}
	targets := lo.Filter(r.store.Snapshot().Posts, func(p domain.Post, _ int) bool {
		return ident.IsNavigable(p.ID)
	})
	targets = targets[:min(n, len(targets))]

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, p := range targets {
		g.Go(func() error {
			if _, err := r.store.EnsureDetails(ctx, p.ID); err != nil {
				r.log.Warn("Details unavailable", "id", p.ID, "err", err)
			}
			return nil
		})
	}
	g.Wait()
}

func (r *reader) printList(state view.State) {
	snap := r.store.Snapshot()

	heading := fmt.Sprintf("%s feed", state.Category)
	if state.SearchTerm != "" {
		heading = fmt.Sprintf("search %q sorted by %s", state.SearchTerm, state.Category)
	}
	fmt.Fprintf(r.out, "%s: %d posts, status %s\n", heading, len(snap.Posts), snap.Status)
	if snap.Error != "" {
		fmt.Fprintf(r.out, "error: %s\n", snap.Error)
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCORE\tCOMMENTS\tAGE\tSUBREDDIT\tTITLE")
	for _, p := range snap.Posts {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\n", p.ID, p.Score, p.NumComments, age(p.CreatedUTC), p.Subreddit, p.Title)
	}
	tw.Flush()

	for _, p := range snap.Posts {
		d, ok := r.store.Detail(p.ID)
		if !ok {
			continue
		}
		r.printDetail(p, d)
	}

	if snap.HasMore() {
		fmt.Fprintln(r.out, "more pages available")
	}
}

func (r *reader) printDetail(p domain.Post, d domain.Detail) {
	fmt.Fprintf(r.out, "\n== %s (u/%s)\n", p.Title, p.Author)
	switch d.Status {
	case domain.StatusFailed:
		fmt.Fprintf(r.out, "Failed to load details: %s\n", d.Error)
		return
	case domain.StatusLoading, domain.StatusIdle:
		fmt.Fprintln(r.out, "loading...")
		return
	}

	if d.Selftext == "" {
		fmt.Fprintln(r.out, "No text content.")
	} else {
		fmt.Fprintln(r.out, d.Selftext)
		for _, link := range collector.ExtractLinks(d.Selftext) {
			fmt.Fprintf(r.out, "  -> %s\n", link)
		}
	}

	if len(d.Comments) == 0 {
		fmt.Fprintln(r.out, "No comments found.")
		return
	}
	fmt.Fprintln(r.out, "Top comments:")
	for _, c := range d.Comments {
		fmt.Fprintf(r.out, "  u/%s (%d): %s\n", c.Author, c.Score, strings.ReplaceAll(c.Body, "\n", " "))
	}
}

func age(createdUTC int64) string {
	if createdUTC == 0 {
		return "-"
	}
	return time.Since(time.Unix(createdUTC, 0)).Truncate(time.Minute).String()
}
