package collector

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/qepting91/linkscape/internal/domain"
)

const kindComment = "t1"

// rawListing is the listing envelope the content API wraps every page in.
// Item data stays untyped so a malformed field degrades to a default
// instead of failing the whole page.
type rawListing struct {
	Kind string `json:"kind"`
	Data struct {
		After    any        `json:"after"`
		Children []rawThing `json:"children"`
	} `json:"data"`
}

type rawThing struct {
	Kind string
	Data map[string]any
}

// UnmarshalJSON never fails: a child that is not an object, or whose data is
// not an object, decodes to an empty thing.
func (t *rawThing) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*t = rawThing{}
		return nil
	}

	m := cast.ToStringMap(v)
	*t = rawThing{
		Kind: cast.ToString(m["kind"]),
		Data: cast.ToStringMap(m["data"]),
	}
	return nil
}

// MapPost turns one raw listing item into a Post. Missing numbers become 0,
// thumbnails that are not http(s) URLs ("self", "default", "nsfw") are dropped.
func MapPost(raw map[string]any) domain.Post {
	subreddit := cast.ToString(raw["subreddit_name_prefixed"])
	if subreddit == "" {
		if name := cast.ToString(raw["subreddit"]); name != "" {
			subreddit = "r/" + name
		}
	}

	return domain.Post{
		ID:          cast.ToString(raw["id"]),
		Title:       cast.ToString(raw["title"]),
		Author:      cast.ToString(raw["author"]),
		Subreddit:   subreddit,
		Thumbnail:   thumbnailURL(cast.ToString(raw["thumbnail"])),
		Score:       cast.ToInt(raw["score"]),
		NumComments: max(cast.ToInt(raw["num_comments"]), 0),
		CreatedUTC:  cast.ToInt64(cast.ToFloat64(raw["created_utc"])),
	}
}

// MapComment maps a raw comment node. Anything but a top-level comment
// ("more" stubs, unknown kinds) is reported as not ok.
func MapComment(kind string, raw map[string]any) (domain.Comment, bool) {
	if kind != kindComment {
		return domain.Comment{}, false
	}

	return domain.Comment{
		ID:         cast.ToString(raw["id"]),
		Author:     cast.ToString(raw["author"]),
		Body:       cast.ToString(raw["body"]),
		Score:      cast.ToInt(raw["score"]),
		CreatedUTC: cast.ToInt64(cast.ToFloat64(raw["created_utc"])),
	}, true
}

func mapListing(l rawListing) domain.Page {
	return domain.Page{
		Posts: lo.Map(l.Data.Children, func(c rawThing, _ int) domain.Post {
			return MapPost(c.Data)
		}),
		After: cast.ToString(l.Data.After),
	}
}

// mapDetails reads the [post listing, comment listing] pair returned for a post.
func mapDetails(listings []rawListing) domain.Details {
	var d domain.Details
	if len(listings) > 0 && len(listings[0].Data.Children) > 0 {
		d.Selftext = cast.ToString(listings[0].Data.Children[0].Data["selftext"])
	}

	d.Comments = []domain.Comment{}
	if len(listings) > 1 {
		d.Comments = lo.FilterMap(listings[1].Data.Children, func(c rawThing, _ int) (domain.Comment, bool) {
			return MapComment(c.Kind, c.Data)
		})
	}
	return d
}

func thumbnailURL(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return ""
}

var linkRegex = regexp.MustCompile(`(https?://[^\s]+|www\.[^\s]+)`)

// ExtractLinks returns the URLs found in a post or comment body, normalized to
// absolute https links when written as bare www. hosts.
func ExtractLinks(body string) []string {
	return lo.Map(linkRegex.FindAllString(body, -1), func(raw string, _ int) string {
		if strings.HasPrefix(raw, "http") {
			return raw
		}
		return "https://" + raw
	})
}
