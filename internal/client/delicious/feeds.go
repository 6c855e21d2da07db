package delicious

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"delicious/internal/delicious"
	parser "delicious/internal/parser/delicious"
)

const FeedBaseURL = "http://feeds.delicious.com/v2"

// Feed path templates, keyed by feed name. Placeholders are filled from
// the caller's parameters; a template whose placeholders are not all
// supplied is a validation failure.
var feedPaths = map[string]string{
	"recent":      "/rss/recent",
	"popular":     "/rss/popular",
	"popular_tag": "/rss/popular/{tag}",
	"tag":         "/rss/tag/{tag}",
	"user":        "/rss/{username}",
	"user_tag":    "/rss/{username}/{tag}",
	"url":         "/rss/url/{urlmd5}",
}

// FeedNames lists the available public feeds, sorted.
func FeedNames() []string {
	names := make([]string, 0, len(feedPaths))
	for name := range feedPaths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FeedClient fetches public feeds without credentials. It shares the
// client's throttle discipline but never produces an authentication
// failure.
type FeedClient struct {
	httpClient *http.Client
	baseURL    string
	throttle   *Throttle
}

func NewFeedClient() *FeedClient {
	return &FeedClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    FeedBaseURL,
		throttle:   NewThrottle(DefaultInterval),
	}
}

func (f *FeedClient) WithHTTPClient(client *http.Client) *FeedClient {
	f.httpClient = client
	return f
}

func (f *FeedClient) WithBaseURL(baseURL string) *FeedClient {
	f.baseURL = baseURL
	return f
}

func (f *FeedClient) WithThrottle(throttle *Throttle) *FeedClient {
	f.throttle = throttle
	return f
}

// Fetch retrieves a named feed, substituting params into the path
// template.
func (f *FeedClient) Fetch(ctx context.Context, name string, params map[string]string) ([]delicious.FeedEntry, error) {
	template, ok := feedPaths[name]
	if !ok {
		return nil, &ValidationError{Endpoint: name, Unknown: []string{"(no such feed)"}}
	}

	path, err := fillTemplate(name, template, params)
	if err != nil {
		return nil, err
	}

	f.throttle.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if cerr := Classify(resp.StatusCode, payload); cerr != nil {
		// Feeds carry no credentials, so a credential-style rejection
		// here is just a failed exchange.
		var authErr *AuthenticationError
		if errors.As(cerr, &authErr) {
			return nil, &TransportError{Status: resp.StatusCode}
		}
		return nil, cerr
	}

	entries, err := parser.ParseFeed(bytes.NewReader(payload))
	if err != nil {
		return nil, &ParseError{Err: err, Fragment: fragment(payload)}
	}
	return entries, nil
}

func (f *FeedClient) Recent(ctx context.Context) ([]delicious.FeedEntry, error) {
	return f.Fetch(ctx, "recent", nil)
}

func (f *FeedClient) Popular(ctx context.Context, tag string) ([]delicious.FeedEntry, error) {
	if tag == "" {
		return f.Fetch(ctx, "popular", nil)
	}
	return f.Fetch(ctx, "popular_tag", map[string]string{"tag": tag})
}

func (f *FeedClient) Tag(ctx context.Context, tag string) ([]delicious.FeedEntry, error) {
	return f.Fetch(ctx, "tag", map[string]string{"tag": tag})
}

func (f *FeedClient) User(ctx context.Context, username, tag string) ([]delicious.FeedEntry, error) {
	if tag == "" {
		return f.Fetch(ctx, "user", map[string]string{"username": username})
	}
	return f.Fetch(ctx, "user_tag", map[string]string{"username": username, "tag": tag})
}

// URL fetches the feed of everyone's bookmarks for one URL; the service
// keys these feeds by the md5 of the URL text.
func (f *FeedClient) URL(ctx context.Context, bookmarkURL string) ([]delicious.FeedEntry, error) {
	return f.Fetch(ctx, "url", map[string]string{"urlmd5": URLHash(bookmarkURL)})
}

// URLHash is the service's URL digest used in feed paths.
func URLHash(bookmarkURL string) string {
	sum := md5.Sum([]byte(bookmarkURL))
	return hex.EncodeToString(sum[:])
}

func fillTemplate(name, template string, params map[string]string) (string, error) {
	var missing []string
	path := template
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			break
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			return "", &ParseError{Err: errors.New("unterminated placeholder in feed template " + template)}
		}
		key := path[start+1 : start+end]
		value, ok := params[key]
		if !ok || value == "" {
			missing = append(missing, key)
			value = ""
		}
		path = path[:start] + url.PathEscape(value) + path[start+end+1:]
	}

	if len(missing) > 0 {
		return "", &ValidationError{Endpoint: name, Missing: missing}
	}
	return path, nil
}
