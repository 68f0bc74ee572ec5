package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"
	"resty.dev/v3"

	"github.com/qepting91/linkscape/internal/domain"
)

var ErrStatus = errors.New("unexpected response status")

// PublicClient reads the unauthenticated .json endpoints
type PublicClient struct {
	client  *resty.Client
	limiter *rate.Limiter
}

func NewPublicClient(baseURL, userAgent string, interval, timeout time.Duration) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("user agent is required for public access")
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &PublicClient{
		client:  client,
		limiter: newLimiter(interval),
	}, nil
}

func (pc *PublicClient) Close() error {
	return pc.client.Close()
}

func (pc *PublicClient) FetchFeed(ctx context.Context, q domain.FeedQuery) (domain.Page, error) {
	path := "/" + string(q.Category) + ".json"
	if q.Subreddit != "" {
		path = "/r/" + q.Subreddit + path
	}

	var listing rawListing
	err := pc.get(ctx, path, listParams(q.Limit, q.After), &listing)
	if err != nil {
		return domain.Page{}, err
	}
	return mapListing(listing), nil
}

func (pc *PublicClient) Search(ctx context.Context, q domain.SearchQuery) (domain.Page, error) {
	params := listParams(q.Limit, q.After)
	params["q"] = q.Query
	if q.Sort != "" {
		params["sort"] = string(q.Sort)
	}

	var listing rawListing
	if err := pc.get(ctx, "/search.json", params, &listing); err != nil {
		return domain.Page{}, err
	}
	return mapListing(listing), nil
}

func (pc *PublicClient) FetchDetails(ctx context.Context, id string) (domain.Details, error) {
	var listings []rawListing
	if err := pc.get(ctx, "/comments/"+id+".json", map[string]string{"raw_json": "1"}, &listings); err != nil {
		return domain.Details{}, err
	}
	return mapDetails(listings), nil
}

func (pc *PublicClient) get(ctx context.Context, path string, params map[string]string, result any) error {
	if err := pc.limiter.Wait(ctx); err != nil {
		return err
	}

	res, err := pc.client.R().
		WithContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		Get(path)
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("%w: %d from %s", ErrStatus, res.StatusCode(), path)
	}
	return nil
}

func listParams(limit int, after string) map[string]string {
	params := map[string]string{"raw_json": "1"}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}
	if after != "" {
		params["after"] = after
	}
	return params
}

// newLimiter returns a token bucket allowing one request per interval.
// A zero interval disables throttling.
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
