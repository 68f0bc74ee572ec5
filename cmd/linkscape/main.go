package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/qepting91/linkscape/internal/collector"
	"github.com/qepting91/linkscape/internal/config"
	"github.com/qepting91/linkscape/internal/dashboard"
	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/ingest"
	"github.com/qepting91/linkscape/internal/logging"
	"github.com/qepting91/linkscape/internal/storage"
	"github.com/qepting91/linkscape/internal/store"
	"github.com/qepting91/linkscape/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "linkscape",
		Usage: "browse, search and read posts from the content feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "search term; empty shows the category feed"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Value: string(domain.DefaultCategory), Usage: "hot, new or top"},
			&cli.IntFlag{Name: "pages", Value: 1, Usage: "number of pages to load"},
			&cli.IntFlag{Name: "details", Value: 3, Usage: "open this many posts and load their comments"},
			&cli.IntFlag{Name: "workers", Value: 2, Usage: "concurrent detail fetches"},
			&cli.StringSliceFlag{Name: "draft", Usage: "author a local post with this title (repeatable)"},
			&cli.BoolFlag{Name: "serve", Usage: "keep running and serve the dashboard"},
		},
		Action: run,
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("linkscape failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	// 1. Setup
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		return err
	}

	category, err := domain.ParseCategory(c.String("category"))
	if err != nil {
		return err
	}

	// 2. Initialize Client (Using Factory)
	src, err := collector.NewCollector(cfg)
	if err != nil {
		return fmt.Errorf("initialize collector: %w", err)
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Info("Collector initialized", "mode", cfg.Mode)

	// 3. Store, optionally exporting every applied page
	opts := []store.Option{
		store.WithLogger(logger),
		store.WithLimit(cfg.PageSize),
		store.WithSubreddit(cfg.Subreddit),
	}
	if cfg.ExportPath != "" {
		exportQueue := make(chan domain.Post, 100)
		var writerWg sync.WaitGroup
		writer := &storage.WriterService{FilePath: cfg.ExportPath}
		writerWg.Add(1)
		go writer.Start(&writerWg, exportQueue)
		defer func() {
			close(exportQueue)
			writerWg.Wait()
		}()

		opts = append(opts, store.WithPageHook(func(posts []domain.Post) {
			for _, p := range posts {
				exportQueue <- p
			}
		}))
	}
	st := store.New(src, opts...)
	coord := view.New(st, logger)

	// 4. Listing
	if err := coord.Open(ctx, c.String("query"), category).Wait(); err != nil {
		logger.Error("Listing failed", "err", err)
	}
	for i := 1; i < int(c.Int("pages")) && st.Snapshot().HasMore(); i++ {
		if err := st.LoadMore(ctx).Wait(); err != nil {
			logger.Error("Load more failed", "page", i+1, "err", err)
			break
		}
	}

	// 5. Local posts go on top of whatever was loaded
	addDrafts(st, cfg.DraftsPath, c.StringSlice("draft"), logger)

	// 6. Details
	r := &reader{store: st, out: c.Root().Writer, log: logger}
	r.openDetails(ctx, int(c.Int("details")), int(c.Int("workers")))
	r.printList(coord.State())

	if !c.Bool("serve") {
		return nil
	}
	logger.Info("Starting Dashboard", "port", cfg.Port)
	return dashboard.StartServer(ctx, exportFallback{live: st, path: cfg.ExportPath, log: logger}, cfg.Port)
}

func addDrafts(st *store.Store, path string, titles []string, logger *slog.Logger) {
	if path != "" {
		drafts, err := ingest.LoadDrafts(path)
		if err != nil {
			logger.Warn("Drafts not loaded", "path", path, "err", err)
		}
		for _, d := range drafts {
			st.AddLocalPost(d.Title, d.Body, d.Subreddit)
		}
	}
	for _, title := range titles {
		st.AddLocalPost(title, "", "")
	}
}
