package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/qepting91/linkscape/internal/dashboard"
	"github.com/qepting91/linkscape/internal/storage"
	"github.com/qepting91/linkscape/internal/store"
)

// exportFallback shows the posts of earlier runs, read from the export file,
// while the current session has nothing loaded.
type exportFallback struct {
	live dashboard.Lister
	path string
	log  *slog.Logger
}

func (e exportFallback) Snapshot() store.Snapshot {
	snap := e.live.Snapshot()
	if len(snap.Posts) > 0 || e.path == "" {
		return snap
	}

	posts, err := storage.Load(e.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			e.log.Warn("Export not readable", "path", e.path, "err", err)
		}
		return snap
	}
	snap.Posts = posts
	return snap
}
