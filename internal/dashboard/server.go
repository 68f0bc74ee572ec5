package dashboard

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/metrics"
	"github.com/qepting91/linkscape/internal/store"
)

const topPosts = 10

// Lister is the read side of the store the dashboard renders.
type Lister interface {
	Snapshot() store.Snapshot
}

func NewHandler(lister Lister) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		posts := lister.Snapshot().Posts

		pie := subredditPie(posts)
		bar := scoreBar(posts)

		if err := pie.Render(w); err != nil {
			slog.Error("Dashboard render failed", "chart", "pie", "err", err)
			return
		}
		if err := bar.Render(w); err != nil {
			slog.Error("Dashboard render failed", "chart", "bar", "err", err)
		}
	})
	return mux
}

// StartServer serves the dashboard until ctx is done.
func StartServer(ctx context.Context, lister Lister, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewHandler(lister),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// 1. Subreddit Dominance
func subredditPie(posts []domain.Post) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Subreddit Dominance"}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)

	subCounts := make(map[string]int)
	for _, p := range posts {
		subCounts[p.Subreddit]++
	}

	pieItems := make([]opts.PieData, 0, len(subCounts))
	for k, v := range subCounts {
		pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
	}
	slices.SortFunc(pieItems, func(a, b opts.PieData) int { return cmp.Compare(a.Name, b.Name) })
	pie.AddSeries("Posts", pieItems)
	return pie
}

// 2. Top scores in the current list
func scoreBar(posts []domain.Post) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Scores"}))

	ranked := slices.Clone(posts)
	slices.SortStableFunc(ranked, func(a, b domain.Post) int { return cmp.Compare(b.Score, a.Score) })
	ranked = ranked[:min(len(ranked), topPosts)]

	barX := make([]string, 0, len(ranked))
	barY := make([]opts.BarData, 0, len(ranked))
	for _, p := range ranked {
		barX = append(barX, shorten(p.Title, 32))
		barY = append(barY, opts.BarData{Value: p.Score})
	}
	bar.SetXAxis(barX).AddSeries("Score", barY)
	return bar
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
