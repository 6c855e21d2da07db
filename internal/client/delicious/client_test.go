package delicious

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"delicious/internal/delicious"
)

func testClient(server *httptest.Server) *Client {
	return NewClient(BasicAuth{Username: "user", Password: "secret"}).
		WithHTTPClient(server.Client()).
		WithBaseURL(server.URL).
		WithThrottle(NewThrottle(0)).
		WithRetries(0, 0)
}

func TestRequestParsesPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/recent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<posts user="user">
  <post href="http://example.com/" description="Example" hash="abc123"
        tag="example web" time="2026-01-02T15:04:05Z" shared="yes"/>
</posts>`))
	}))
	defer server.Close()

	res, err := testClient(server).Request(context.Background(), "posts/recent", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Kind != delicious.KindPosts {
		t.Fatalf("expected posts result, got %s", res.Kind)
	}
	if len(res.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(res.Posts))
	}
	post := res.Posts[0]
	if post.URL != "http://example.com/" {
		t.Errorf("unexpected url %q", post.URL)
	}
	if len(post.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", post.Tags)
	}
	if !post.Shared {
		t.Error("expected shared post")
	}
}

func TestRequestSendsBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			t.Errorf("missing or wrong basic auth: %q %q %v", user, pass, ok)
		}
		w.Write([]byte(`<update time="2026-01-02T15:04:05Z"/>`))
	}))
	defer server.Close()

	if _, err := testClient(server).Request(context.Background(), "posts/update", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestEncodesParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tag"); got != "go lang" {
			t.Errorf("expected tag=%q, got %q", "go lang", got)
		}
		w.Write([]byte(`<posts user="user"/>`))
	}))
	defer server.Close()

	params := url.Values{}
	params.Set("tag", "go lang")
	if _, err := testClient(server).Request(context.Background(), "posts/all", params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRequestValidatesBeforeTransport(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	_, err := testClient(server).Request(context.Background(), "posts/add", nil)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	if calls != 0 {
		t.Errorf("expected no transport calls, got %d", calls)
	}
}

func TestRequestUnknownEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := testClient(server).Request(context.Background(), "posts/nonsense", nil)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
}

func TestRequestWithoutCredentials(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := NewClient(nil).
		WithHTTPClient(server.Client()).
		WithBaseURL(server.URL).
		WithThrottle(NewThrottle(0))

	_, err := client.Request(context.Background(), "posts/update", nil)

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %T (%v)", err, err)
	}
	if calls != 0 {
		t.Errorf("expected no transport calls, got %d", calls)
	}
}

func TestRequestUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "401 Forbidden", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := testClient(server).Request(context.Background(), "posts/update", nil)

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthenticationError, got %T (%v)", err, err)
	}
	if authErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", authErr.Status)
	}
}

func TestRequestRateLimitedGrowsThrottle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	throttle := NewThrottle(0)
	client := testClient(server).WithThrottle(throttle).WithRateLimitBackoff()

	_, err := client.Request(context.Background(), "posts/update", nil)

	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("expected RateLimitError, got %T (%v)", err, err)
	}
	if got := throttle.Interval(); got != DefaultInterval {
		t.Errorf("expected throttle interval %v after backoff, got %v", DefaultInterval, got)
	}
}

func TestRequestRateLimitedWithoutBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "throttled", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	throttle := NewThrottle(0)
	client := testClient(server).WithThrottle(throttle)

	_, err := client.Request(context.Background(), "posts/update", nil)

	var rateLimitErr *RateLimitError
	if !errors.As(err, &rateLimitErr) {
		t.Fatalf("expected RateLimitError, got %T (%v)", err, err)
	}
	if got := throttle.Interval(); got != 0 {
		t.Errorf("expected throttle interval unchanged, got %v", got)
	}
}

func TestRequestServiceFailureCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<result code="something went wrong"/>`))
	}))
	defer server.Close()

	params := url.Values{}
	params.Set("url", "http://example.com/")
	_, err := testClient(server).Request(context.Background(), "posts/delete", params)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != "something went wrong" {
		t.Errorf("expected verbatim code, got %q", apiErr.Code)
	}
}

func TestRequestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server).Request(context.Background(), "posts/update", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T (%v)", err, err)
	}
	if transportErr.Status != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", transportErr.Status)
	}
}

func TestRequestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<posts user="user"><post href="http://exam`))
	}))
	defer server.Close()

	_, err := testClient(server).Request(context.Background(), "posts/all", nil)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T (%v)", err, err)
	}
	if parseErr.Fragment == "" {
		t.Error("expected fragment of the offending payload")
	}
}

func TestRequestShapeMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<update time="2026-01-02T15:04:05Z"/>`))
	}))
	defer server.Close()

	_, err := testClient(server).Request(context.Background(), "posts/all", nil)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for shape mismatch, got %T (%v)", err, err)
	}
}

// timeoutTransport fails with a timeout a fixed number of times before
// delegating to the real transport.
type timeoutTransport struct {
	failures int
	calls    int
	inner    http.RoundTripper
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "dial tcp: i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func (t *timeoutTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.calls++
	if t.calls <= t.failures {
		return nil, timeoutError{}
	}
	return t.inner.RoundTrip(req)
}

func TestRequestRetriesTransientFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<update time="2026-01-02T15:04:05Z"/>`))
	}))
	defer server.Close()

	transport := &timeoutTransport{failures: 2, inner: http.DefaultTransport}
	client := testClient(server).
		WithHTTPClient(&http.Client{Transport: transport}).
		WithRetries(2, 0)

	res, err := client.Request(context.Background(), "posts/update", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Update == nil {
		t.Fatal("expected update result")
	}
	if transport.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", transport.calls)
	}
}

func TestRequestGivesUpAfterMaxRetries(t *testing.T) {
	transport := &timeoutTransport{failures: 10, inner: http.DefaultTransport}
	client := NewClient(BasicAuth{Username: "user", Password: "secret"}).
		WithHTTPClient(&http.Client{Transport: transport}).
		WithBaseURL("http://127.0.0.1:0").
		WithThrottle(NewThrottle(0)).
		WithRetries(1, 0)

	_, err := client.Request(context.Background(), "posts/update", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T (%v)", err, err)
	}
	if transport.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", transport.calls)
	}
}

func TestRequestRawReturnsPayload(t *testing.T) {
	body := `<posts user="user" tag="" total="1"/>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/posts/all" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(body))
	}))
	defer server.Close()

	payload, err := testClient(server).RequestRaw(context.Background(), "posts/all", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != body {
		t.Errorf("expected raw payload %q, got %q", body, payload)
	}
}

func TestRequestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`<update time="2026-01-02T15:04:05Z"/>`))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(server).Request(ctx, "posts/update", nil)

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T (%v)", err, err)
	}
}
