package storage

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/ident"
)

// WriterService exports fetched posts as NDJSON. A single goroutine owns the
// file; producers only send on the channel.
type WriterService struct {
	FilePath string
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.Post) {
	defer wg.Done()

	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("Export file unavailable", "path", w.FilePath, "err", err)
		// keep draining so producers never block
		for range input {
		}
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)

	for post := range input {
		// authored posts stay in the session
		if !ident.IsRemote(post.ID) {
			continue
		}
		if err := enc.Encode(post); err != nil {
			slog.Error("Export write failed", "id", post.ID, "err", err)
		}
	}
}

// Load reads an export back, skipping lines that do not decode.
func Load(path string) ([]domain.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var posts []domain.Post
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var p domain.Post
		if err := json.Unmarshal(scanner.Bytes(), &p); err == nil {
			posts = append(posts, p)
		}
	}
	return posts, scanner.Err()
}
