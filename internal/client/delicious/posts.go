package delicious

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"delicious/internal/delicious"
)

// AddOptions carries the optional parameters of posts/add. Replace and
// Shared are tri-state: nil leaves the service default in place.
type AddOptions struct {
	Extended string
	Tags     []string
	Date     time.Time
	Replace  *bool
	Shared   *bool
}

// PostsAdd creates or, with replace, updates the bookmark for a URL.
func (c *Client) PostsAdd(ctx context.Context, postURL, description string, opts *AddOptions) error {
	params := url.Values{}
	params.Set("url", postURL)
	params.Set("description", description)

	if opts != nil {
		if opts.Extended != "" {
			params.Set("extended", opts.Extended)
		}
		if len(opts.Tags) > 0 {
			params.Set("tags", delicious.JoinTags(opts.Tags))
		}
		if !opts.Date.IsZero() {
			params.Set("dt", opts.Date.UTC().Format(time.RFC3339))
		}
		if opts.Replace != nil {
			params.Set("replace", yesNo(*opts.Replace))
		}
		if opts.Shared != nil {
			params.Set("shared", yesNo(*opts.Shared))
		}
	}

	_, err := c.Request(ctx, "posts/add", params)
	return err
}

// PostsDelete removes the bookmark for a URL. Deleting a URL that is not
// in the collection surfaces the service's failure as an APIError.
func (c *Client) PostsDelete(ctx context.Context, postURL string) error {
	params := url.Values{}
	params.Set("url", postURL)

	_, err := c.Request(ctx, "posts/delete", params)
	return err
}

// GetOptions filters posts/get. All fields are optional; with none set
// the service returns the most recent day's posts.
type GetOptions struct {
	Tag  string
	Date time.Time
	URL  string
}

func (c *Client) PostsGet(ctx context.Context, opts *GetOptions) ([]delicious.Post, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Tag != "" {
			params.Set("tag", opts.Tag)
		}
		if !opts.Date.IsZero() {
			params.Set("dt", opts.Date.UTC().Format(time.RFC3339))
		}
		if opts.URL != "" {
			params.Set("url", opts.URL)
		}
	}

	res, err := c.Request(ctx, "posts/get", params)
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

func (c *Client) PostsRecent(ctx context.Context, tag string, count int) ([]delicious.Post, error) {
	params := url.Values{}
	if tag != "" {
		params.Set("tag", tag)
	}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	res, err := c.Request(ctx, "posts/recent", params)
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

func (c *Client) PostsAll(ctx context.Context, tag string) ([]delicious.Post, error) {
	params := url.Values{}
	if tag != "" {
		params.Set("tag", tag)
	}

	res, err := c.Request(ctx, "posts/all", params)
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

// PostsUpdate returns the time of the last change to the collection,
// for cache freshness checks.
func (c *Client) PostsUpdate(ctx context.Context) (time.Time, error) {
	res, err := c.Request(ctx, "posts/update", nil)
	if err != nil {
		return time.Time{}, err
	}
	return res.Update.Time, nil
}

func (c *Client) PostsDates(ctx context.Context, tag string) ([]delicious.DateCount, error) {
	params := url.Values{}
	if tag != "" {
		params.Set("tag", tag)
	}

	res, err := c.Request(ctx, "posts/dates", params)
	if err != nil {
		return nil, err
	}
	return res.Dates, nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
