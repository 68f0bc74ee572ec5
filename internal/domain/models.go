package domain

import (
	"context"
	"fmt"
	"strings"
)

// Category is the feed sort, also used as the search sort hint
type Category string

const (
	Hot Category = "hot"
	New Category = "new"
	Top Category = "top"
)

// DefaultCategory is what a fresh or reset view starts with
const DefaultCategory = Hot

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case Hot, New, Top:
		return c, nil
	case "":
		return DefaultCategory, nil
	default:
		return "", fmt.Errorf("unknown category: %s (use 'hot', 'new', or 'top')", s)
	}
}

// Status is the lifecycle of a listing request or a detail record
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Post is the summary shown in the list
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Subreddit   string `json:"subreddit"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	CreatedUTC  int64  `json:"created_utc"`
}

// Comment is a top-level comment of a post
type Comment struct {
	ID         string `json:"id"`
	Author     string `json:"author"`
	Body       string `json:"body"`
	Score      int    `json:"score"`
	CreatedUTC int64  `json:"created_utc"`
}

// Details is what a source returns for one post
type Details struct {
	Selftext string
	Comments []Comment
}

// Detail is the per-post record kept by the store
type Detail struct {
	Status   Status    `json:"status"`
	Error    string    `json:"error,omitempty"`
	Selftext string    `json:"selftext,omitempty"`
	Comments []Comment `json:"comments"`
}

// Page is one listing response. An empty After means there are no more pages.
type Page struct {
	Posts []Post
	After string
}

type FeedQuery struct {
	Category  Category
	Subreddit string
	Limit     int
	After     string
}

type SearchQuery struct {
	Query string
	Sort  Category
	Limit int
	After string
}

// Source defines the remote content API
type Source interface {
	FetchFeed(ctx context.Context, q FeedQuery) (Page, error)
	Search(ctx context.Context, q SearchQuery) (Page, error)
	FetchDetails(ctx context.Context, id string) (Details, error)
}
