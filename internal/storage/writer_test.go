package storage_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/storage"
)

func TestWriterService_ExportsRemotePosts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "export.json")
	w := &storage.WriterService{FilePath: path}

	input := make(chan domain.Post)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, input)

	input <- domain.Post{ID: "abc123", Title: "Remote", Score: 3}
	input <- domain.Post{ID: "local-1700000000000", Title: "Mine"}
	input <- domain.Post{ID: "def456", Title: "Remote too"}
	close(input)
	wg.Wait()

	posts, err := storage.Load(path)
	require.NoError(t, err)
	require.Equal(t, []domain.Post{
		{ID: "abc123", Title: "Remote", Score: 3},
		{ID: "def456", Title: "Remote too"},
	}, posts)
}

func TestWriterService_DrainsWhenFileUnavailable(t *testing.T) {
	t.Parallel()

	w := &storage.WriterService{FilePath: filepath.Join(t.TempDir(), "missing", "export.json")}

	input := make(chan domain.Post)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, input)

	input <- domain.Post{ID: "abc123"}
	close(input)
	wg.Wait()
}
