package delicious

import (
	"context"
	"time"

	"delicious/internal/delicious"
)

// Package-level convenience functions with reduced (username, password,
// ...) signatures. Each constructs a transient client, so unrelated
// credential sets never share throttle state; callers wanting pooling
// should hold a Client.

func transientClient(username, password string) *Client {
	return NewClient(BasicAuth{Username: username, Password: password})
}

// Add bookmarks a URL.
func Add(ctx context.Context, username, password, postURL, description string, opts *AddOptions) error {
	return transientClient(username, password).PostsAdd(ctx, postURL, description, opts)
}

// Get fetches the posts matching a tag, day or URL.
func Get(ctx context.Context, username, password, tag string, date time.Time, postURL string) ([]delicious.Post, error) {
	return transientClient(username, password).PostsGet(ctx, &GetOptions{Tag: tag, Date: date, URL: postURL})
}

// GetAll fetches every post, optionally filtered by tag.
func GetAll(ctx context.Context, username, password, tag string) ([]delicious.Post, error) {
	return transientClient(username, password).PostsAll(ctx, tag)
}

// Delete removes the bookmark for a URL.
func Delete(ctx context.Context, username, password, postURL string) error {
	return transientClient(username, password).PostsDelete(ctx, postURL)
}

// GetTags fetches the account's tag summaries.
func GetTags(ctx context.Context, username, password string) ([]delicious.Tag, error) {
	return transientClient(username, password).TagsGet(ctx)
}

// Rename renames a tag across the collection.
func Rename(ctx context.Context, username, password, old, new string) error {
	return transientClient(username, password).TagsRename(ctx, old, new)
}
