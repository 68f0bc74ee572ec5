package store_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/ident"
	"github.com/qepting91/linkscape/internal/store"
)

func fixedClock() func() time.Time {
	now := time.UnixMilli(1700000000000)
	return func() time.Time { return now }
}

func TestAddLocalPost(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[feedKey(domain.Hot, "")] = domain.Page{Posts: posts("aaa", "bbb")}
	s := store.New(src, store.WithClock(fixedClock()))

	require.NoError(t, s.LoadFeed(t.Context(), domain.Hot, "").Wait())
	post := s.AddLocalPost("Hello", "", "")

	snap := s.Snapshot()
	require.Equal(t, []string{post.ID, "aaa", "bbb"}, ids(snap.Posts))

	first := snap.Posts[0]
	require.Equal(t, "Hello", first.Title)
	require.Zero(t, first.Score)
	require.Zero(t, first.NumComments)
	require.Equal(t, store.LocalAuthor, first.Author)
	require.Equal(t, store.DefaultLocalSubreddit, first.Subreddit)
	require.Equal(t, "local-1700000000000", first.ID)
	require.Equal(t, int64(1700000000), first.CreatedUTC)

	require.True(t, ident.IsNavigable(first.ID))
	require.False(t, ident.IsRemotelyFetchable(first.ID))

	d, ok := s.Detail(first.ID)
	require.True(t, ok)
	require.Equal(t, domain.StatusSucceeded, d.Status)
	require.Empty(t, d.Comments)
}

func TestAddLocalPost_UniqueIDsAndDefaults(t *testing.T) {
	t.Parallel()

	s := store.New(newFakeSource(), store.WithClock(fixedClock()))

	a := s.AddLocalPost("   ", "body", "golang")
	b := s.AddLocalPost(" second ", "", "r/rust")

	require.NotEqual(t, a.ID, b.ID)
	require.True(t, strings.HasPrefix(b.ID, ident.LocalPrefix))
	require.Equal(t, store.PlaceholderTitle, a.Title)
	require.Equal(t, "r/golang", a.Subreddit)
	require.Equal(t, "second", b.Title)
	require.Equal(t, "r/rust", b.Subreddit)
	require.Equal(t, []string{b.ID, a.ID}, ids(s.Snapshot().Posts))
}

func TestAddLocalPost_GoneAfterReplace(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.pages[feedKey(domain.New, "")] = domain.Page{Posts: posts("ccc")}
	s := store.New(src)

	post := s.AddLocalPost("Hello", "body", "")
	require.NoError(t, s.LoadFeed(t.Context(), domain.New, "").Wait())

	require.Equal(t, []string{"ccc"}, ids(s.Snapshot().Posts))
	_, ok := s.Post(post.ID)
	require.False(t, ok)
}
