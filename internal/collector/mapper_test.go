package collector

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/qepting91/linkscape/internal/domain"
)

func TestMapPost(t *testing.T) {
	raw := map[string]any{
		"id":                      "abc123",
		"title":                   "Go 1.24 released",
		"author":                  "gopher",
		"subreddit":               "golang",
		"subreddit_name_prefixed": "r/golang",
		"thumbnail":               "https://b.thumbs.redditmedia.com/x.jpg",
		"score":                   float64(-4),
		"num_comments":            float64(12),
		"created_utc":             1700000000.0,
	}

	want := domain.Post{
		ID:          "abc123",
		Title:       "Go 1.24 released",
		Author:      "gopher",
		Subreddit:   "r/golang",
		Thumbnail:   "https://b.thumbs.redditmedia.com/x.jpg",
		Score:       -4,
		NumComments: 12,
		CreatedUTC:  1700000000,
	}

	if diff := cmp.Diff(want, MapPost(raw)); diff != "" {
		t.Errorf("MapPost mismatch (-want +got):\n%s", diff)
	}
}

func TestMapPost_Defaults(t *testing.T) {
	got := MapPost(map[string]any{
		"id":        "xyz",
		"subreddit": "rust",
		"thumbnail": "self",
		"score":     "not a number",
	})

	want := domain.Post{ID: "xyz", Subreddit: "r/rust"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapPost defaults mismatch (-want +got):\n%s", diff)
	}

	if got := MapPost(nil); got != (domain.Post{}) {
		t.Errorf("MapPost(nil) = %+v, want zero post", got)
	}
}

func TestMapComment(t *testing.T) {
	c, ok := MapComment("t1", map[string]any{"id": "c1", "author": "a", "body": "Nice", "score": 10.0, "created_utc": 1.0})
	if !ok {
		t.Fatal("t1 comment was dropped")
	}
	want := domain.Comment{ID: "c1", Author: "a", Body: "Nice", Score: 10, CreatedUTC: 1}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("MapComment mismatch (-want +got):\n%s", diff)
	}

	if _, ok := MapComment("more", map[string]any{"id": "m1"}); ok {
		t.Error("more stub should be dropped")
	}
}

func TestMapDetails(t *testing.T) {
	body := `[
	  {"kind":"Listing","data":{"children":[{"kind":"t3","data":{"selftext":"Hello world with https://example.com"}}]}},
	  {"kind":"Listing","data":{"children":[
	    {"kind":"t1","data":{"id":"c1","author":"a","body":"Nice","score":10,"created_utc":1,"replies":""}},
	    {"kind":"more","data":{"count":4,"children":["c9"]}}
	  ]}}
	]`

	var listings []rawListing
	if err := json.Unmarshal([]byte(body), &listings); err != nil {
		t.Fatal(err)
	}

	want := domain.Details{
		Selftext: "Hello world with https://example.com",
		Comments: []domain.Comment{{ID: "c1", Author: "a", Body: "Nice", Score: 10, CreatedUTC: 1}},
	}
	if diff := cmp.Diff(want, mapDetails(listings)); diff != "" {
		t.Errorf("mapDetails mismatch (-want +got):\n%s", diff)
	}

	empty := mapDetails(nil)
	if empty.Comments == nil || len(empty.Comments) != 0 || empty.Selftext != "" {
		t.Errorf("mapDetails(nil) = %+v, want empty details", empty)
	}
}

func TestMapListing_MalformedItems(t *testing.T) {
	body := `{"kind":"Listing","data":{"after":17,"children":[
	  {"kind":"t3","data":{"id":"abc123","title":"ok","subreddit":"golang"}},
	  {"kind":"t3","data":["garbage"]},
	  "not a thing",
	  {"kind":"t3","data":null}
	]}}`

	var listing rawListing
	if err := json.Unmarshal([]byte(body), &listing); err != nil {
		t.Fatalf("malformed items must not fail the page: %v", err)
	}

	page := mapListing(listing)
	want := []domain.Post{{ID: "abc123", Title: "ok", Subreddit: "r/golang"}, {}, {}, {}}
	if diff := cmp.Diff(want, page.Posts); diff != "" {
		t.Errorf("mapListing mismatch (-want +got):\n%s", diff)
	}
	if page.After != "17" {
		t.Errorf("After = %q, want %q", page.After, "17")
	}
}

func TestExtractLinks(t *testing.T) {
	got := ExtractLinks("see https://go.dev/doc and www.example.com/x\nplain text")
	want := []string{"https://go.dev/doc", "https://www.example.com/x"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractLinks mismatch (-want +got):\n%s", diff)
	}
}
