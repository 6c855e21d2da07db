package delicious

import (
	"context"
	"net/url"

	"delicious/internal/delicious"
)

func (c *Client) TagsGet(ctx context.Context) ([]delicious.Tag, error) {
	res, err := c.Request(ctx, "tags/get", nil)
	if err != nil {
		return nil, err
	}
	return res.Tags, nil
}

// TagsRename renames a tag across every post that carries it.
func (c *Client) TagsRename(ctx context.Context, old, new string) error {
	params := url.Values{}
	params.Set("old", old)
	params.Set("new", new)

	_, err := c.Request(ctx, "tags/rename", params)
	return err
}
