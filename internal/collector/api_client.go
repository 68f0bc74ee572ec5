package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/samber/lo"
	"golang.org/x/time/rate"

	"github.com/qepting91/linkscape/internal/domain"
)

// APIClient talks to the authenticated OAuth API
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPIClient(id, secret, user, pass, userAgent string, interval time.Duration) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}

	return &APIClient{client: client, limiter: newLimiter(interval)}, nil
}

func (ac *APIClient) FetchFeed(ctx context.Context, q domain.FeedQuery) (domain.Page, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return domain.Page{}, err
	}

	opts := reddit.ListOptions{Limit: q.Limit, After: q.After}

	var (
		posts []*reddit.Post
		resp  *reddit.Response
		err   error
	)
	switch q.Category {
	case domain.New:
		posts, resp, err = ac.client.Subreddit.NewPosts(ctx, q.Subreddit, &opts)
	case domain.Top:
		posts, resp, err = ac.client.Subreddit.TopPosts(ctx, q.Subreddit, &reddit.ListPostOptions{ListOptions: opts})
	default:
		posts, resp, err = ac.client.Subreddit.HotPosts(ctx, q.Subreddit, &opts)
	}
	if err != nil {
		return domain.Page{}, fmt.Errorf("authenticated api error: %w", err)
	}

	return toPage(posts, resp), nil
}

func (ac *APIClient) Search(ctx context.Context, q domain.SearchQuery) (domain.Page, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return domain.Page{}, err
	}

	posts, resp, err := ac.client.Subreddit.SearchPosts(ctx, q.Query, "", &reddit.ListPostSearchOptions{
		ListPostOptions: reddit.ListPostOptions{
			ListOptions: reddit.ListOptions{Limit: q.Limit, After: q.After},
		},
		Sort: string(q.Sort),
	})
	if err != nil {
		return domain.Page{}, fmt.Errorf("authenticated api error: %w", err)
	}

	return toPage(posts, resp), nil
}

func (ac *APIClient) FetchDetails(ctx context.Context, id string) (domain.Details, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return domain.Details{}, err
	}

	pc, _, err := ac.client.Post.Get(ctx, id)
	if err != nil {
		return domain.Details{}, fmt.Errorf("authenticated api error: %w", err)
	}

	d := domain.Details{Comments: []domain.Comment{}}
	if pc.Post != nil {
		d.Selftext = pc.Post.Body
	}
	d.Comments = lo.FilterMap(pc.Comments, func(c *reddit.Comment, _ int) (domain.Comment, bool) {
		if c == nil {
			return domain.Comment{}, false
		}
		return fromRedditComment(c), true
	})
	return d, nil
}

func toPage(posts []*reddit.Post, resp *reddit.Response) domain.Page {
	page := domain.Page{
		Posts: lo.FilterMap(posts, func(p *reddit.Post, _ int) (domain.Post, bool) {
			if p == nil {
				return domain.Post{}, false
			}
			return fromRedditPost(p), true
		}),
	}
	if resp != nil {
		page.After = resp.After
	}
	return page
}

func fromRedditPost(p *reddit.Post) domain.Post {
	post := domain.Post{
		ID:          p.ID,
		Title:       p.Title,
		Subreddit:   p.SubredditNamePrefixed,
		Author:      p.Author,
		Score:       p.Score,
		NumComments: max(p.NumberOfComments, 0),
	}
	if p.Created != nil {
		post.CreatedUTC = p.Created.Time.Unix()
	}
	return post
}

func fromRedditComment(c *reddit.Comment) domain.Comment {
	comment := domain.Comment{
		ID:     c.ID,
		Author: c.Author,
		Body:   c.Body,
		Score:  c.Score,
	}
	if c.Created != nil {
		comment.CreatedUTC = c.Created.Time.Unix()
	}
	return comment
}
