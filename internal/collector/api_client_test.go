package collector

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/loganintech/go-reddit/v2/reddit"

	"github.com/qepting91/linkscape/internal/domain"
)

func TestToPage(t *testing.T) {
	created := &reddit.Timestamp{Time: time.Unix(1700000000, 0)}
	posts := []*reddit.Post{
		{
			ID:                    "abc123",
			Title:                 "Hello",
			Author:                "gopher",
			SubredditNamePrefixed: "r/golang",
			Score:                 7,
			NumberOfComments:      2,
			Created:               created,
		},
		nil,
		{ID: "def456", Title: "No timestamp"},
	}

	got := toPage(posts, &reddit.Response{After: "t3_def456"})
	want := domain.Page{
		Posts: []domain.Post{
			{ID: "abc123", Title: "Hello", Author: "gopher", Subreddit: "r/golang", Score: 7, NumComments: 2, CreatedUTC: 1700000000},
			{ID: "def456", Title: "No timestamp"},
		},
		After: "t3_def456",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("toPage mismatch (-want +got):\n%s", diff)
	}

	if page := toPage(nil, nil); page.After != "" || len(page.Posts) != 0 {
		t.Errorf("toPage(nil, nil) = %+v, want empty page", page)
	}
}

func TestFromRedditComment(t *testing.T) {
	got := fromRedditComment(&reddit.Comment{ID: "c1", Author: "a", Body: "Nice", Score: 10})
	want := domain.Comment{ID: "c1", Author: "a", Body: "Nice", Score: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fromRedditComment mismatch (-want +got):\n%s", diff)
	}
}
