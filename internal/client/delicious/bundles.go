package delicious

import (
	"context"
	"net/url"

	"delicious/internal/delicious"
)

func (c *Client) BundlesAll(ctx context.Context) ([]delicious.Bundle, error) {
	res, err := c.Request(ctx, "tags/bundles/all", nil)
	if err != nil {
		return nil, err
	}
	return res.Bundles, nil
}

// BundlesSet assigns tags to a named bundle, replacing its previous
// contents.
func (c *Client) BundlesSet(ctx context.Context, name string, tags []string) error {
	params := url.Values{}
	params.Set("bundle", name)
	params.Set("tags", delicious.JoinTags(tags))

	_, err := c.Request(ctx, "tags/bundles/set", params)
	return err
}

func (c *Client) BundlesDelete(ctx context.Context, name string) error {
	params := url.Values{}
	params.Set("bundle", name)

	_, err := c.Request(ctx, "tags/bundles/delete", params)
	return err
}
