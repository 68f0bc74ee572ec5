package collector

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/qepting91/linkscape/internal/domain"
)

const mockPages = 3

// MockClient implements domain.Source but returns fake data
type MockClient struct {
	Latency time.Duration
}

func NewMockClient(latency time.Duration) *MockClient {
	return &MockClient{Latency: latency}
}

func (mc *MockClient) FetchFeed(ctx context.Context, q domain.FeedQuery) (domain.Page, error) {
	if err := mc.wait(ctx); err != nil {
		return domain.Page{}, err
	}

	label := "r/popular"
	if q.Subreddit != "" {
		label = "r/" + q.Subreddit
	}
	return mockPage(string(q.Category), label, q.Limit, q.After, func(i int) string {
		return fmt.Sprintf("[%s] Simulated %s post #%d", label, q.Category, i)
	}), nil
}

func (mc *MockClient) Search(ctx context.Context, q domain.SearchQuery) (domain.Page, error) {
	if err := mc.wait(ctx); err != nil {
		return domain.Page{}, err
	}

	prefix := "sr" + strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, strings.ToLower(q.Query))
	return mockPage(prefix, "r/search", q.Limit, q.After, func(i int) string {
		return fmt.Sprintf("Simulated result #%d for %q", i, q.Query)
	}), nil
}

func (mc *MockClient) FetchDetails(ctx context.Context, id string) (domain.Details, error) {
	if err := mc.wait(ctx); err != nil {
		return domain.Details{}, err
	}

	comments := make([]domain.Comment, 0, 3)
	for i := 0; i < 3; i++ {
		comments = append(comments, domain.Comment{
			ID:         fmt.Sprintf("%sc%d", id, i),
			Author:     "simulated_user",
			Body:       fmt.Sprintf("Simulated comment %d, see https://example.com/%s", i, id),
			Score:      rand.Intn(100),
			CreatedUTC: time.Now().Unix(),
		})
	}
	return domain.Details{
		Selftext: fmt.Sprintf("Simulated body of post %s.\n\nSecond paragraph.", id),
		Comments: comments,
	}, nil
}

// Simulate network latency (nice for testing supersession)
func (mc *MockClient) wait(ctx context.Context) error {
	if mc.Latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(mc.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// mockPage builds page number `after` (0 when empty) of a fake listing.
// Cursors are the next page number, the last page carries none.
func mockPage(prefix, subreddit string, limit int, after string, title func(int) string) domain.Page {
	if limit <= 0 {
		limit = 25
	}
	page, _ := strconv.Atoi(after)

	posts := make([]domain.Post, 0, limit)
	for i := page * limit; i < (page+1)*limit; i++ {
		posts = append(posts, domain.Post{
			ID:          fmt.Sprintf("%s%d", prefix, i),
			Title:       title(i),
			Subreddit:   subreddit,
			Author:      "simulated_user",
			Score:       rand.Intn(500),
			NumComments: rand.Intn(50),
			CreatedUTC:  time.Now().Unix() - int64(i*60),
		})
	}

	var next string
	if page+1 < mockPages {
		next = strconv.Itoa(page + 1)
	}
	return domain.Page{Posts: posts, After: next}
}
