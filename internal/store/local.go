package store

import (
	"strconv"
	"strings"

	"github.com/qepting91/linkscape/internal/domain"
	"github.com/qepting91/linkscape/internal/ident"
	"github.com/qepting91/linkscape/internal/metrics"
)

const (
	LocalAuthor           = "you"
	DefaultLocalSubreddit = "r/local"
	PlaceholderTitle      = "Untitled post"
)

// AddLocalPost puts a locally authored post at the head of the list together
// with a ready detail record. Nothing is sent anywhere.
func (s *Store) AddLocalPost(title, body, subreddit string) domain.Post {
	title = strings.TrimSpace(title)
	if title == "" {
		title = PlaceholderTitle
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// ids must stay unique when two posts land in the same millisecond
	ms := max(now.UnixMilli(), s.lastLocal+1)
	s.lastLocal = ms

	post := domain.Post{
		ID:         ident.LocalPrefix + strconv.FormatInt(ms, 10),
		Title:      title,
		Author:     LocalAuthor,
		Subreddit:  localSubreddit(subreddit),
		CreatedUTC: now.Unix(),
	}

	s.posts = append([]domain.Post{post}, s.posts...)
	s.details[post.ID] = &domain.Detail{
		Status:   domain.StatusSucceeded,
		Selftext: body,
		Comments: []domain.Comment{},
	}

	metrics.LocalPosts.Inc()
	s.log.Info("local post added", "id", post.ID, "subreddit", post.Subreddit)
	return post
}

func localSubreddit(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return DefaultLocalSubreddit
	case strings.HasPrefix(name, "r/"):
		return name
	default:
		return "r/" + name
	}
}
