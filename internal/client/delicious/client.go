package delicious

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"delicious/internal/delicious"
	parser "delicious/internal/parser/delicious"
)

const (
	BaseURL = "https://api.del.icio.us/v1"

	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = 1 * time.Second
)

// Client talks to the v1 API. Beyond the throttle's last-call timestamp
// it holds no state across calls; every dispatch performs one logical
// round trip and owns its connection for the duration of the call.
type Client struct {
	httpClient         *http.Client
	auth               AuthMethod
	baseURL            string
	throttle           *Throttle
	maxRetries         int
	retryDelay         time.Duration
	backoffOnRateLimit bool
}

func NewClient(auth AuthMethod) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		auth:       auth,
		baseURL:    BaseURL,
		throttle:   NewThrottle(DefaultInterval),
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

func NewClientFromCredentials() (*Client, error) {
	creds, err := LoadCredentials()
	if err != nil {
		return nil, err
	}
	return NewClient(BasicAuth{Username: creds.Username, Password: creds.Password}), nil
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

func (c *Client) WithThrottle(throttle *Throttle) *Client {
	c.throttle = throttle
	return c
}

func (c *Client) WithRetries(max int, delay time.Duration) *Client {
	c.maxRetries = max
	c.retryDelay = delay
	return c
}

// WithRateLimitBackoff makes the client grow its throttle interval when
// the service signals throttling. The failure is still returned; the
// client never retries it silently.
func (c *Client) WithRateLimitBackoff() *Client {
	c.backoffOnRateLimit = true
	return c
}

// Request dispatches a named operation: validates params against the
// endpoint descriptor, waits on the throttle, performs the transport call
// and returns the parsed result or a typed error.
func (c *Client) Request(ctx context.Context, name string, params url.Values) (*delicious.Result, error) {
	ep, ok := Lookup(name)
	if !ok {
		return nil, &ValidationError{Endpoint: name, Unknown: []string{"(no such endpoint)"}}
	}
	if params == nil {
		params = url.Values{}
	}
	if err := ep.Validate(params); err != nil {
		return nil, err
	}
	if ep.Auth && c.auth == nil {
		return nil, &AuthenticationError{}
	}

	payload, err := c.send(ctx, ep.Path, params, ep.Auth)
	if err != nil {
		return nil, err
	}

	res, err := c.parse(payload)
	if err != nil {
		return nil, err
	}
	if res.Kind != ep.Shape {
		return nil, &ParseError{
			Err: fmt.Errorf("%s: expected %s response, got %s", ep.Path, ep.Shape, res.Kind),
		}
	}
	return res, nil
}

// RequestRaw performs an arbitrary API call and returns the raw payload.
// No parameter validation is applied; the path is taken as-is.
func (c *Client) RequestRaw(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if c.auth == nil {
		return nil, &AuthenticationError{}
	}
	if params == nil {
		params = url.Values{}
	}
	return c.send(ctx, path, params, true)
}

func (c *Client) parse(payload []byte) (*delicious.Result, error) {
	res, err := parser.Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, &ParseError{Err: err, Fragment: fragment(payload)}
	}
	return res, nil
}

// send performs the transport call with bounded retries. Only transient
// network failures (timeout, connection reset) are retried; a definitive
// rejection is never retried. The throttle is consulted once per attempt.
func (c *Client) send(ctx context.Context, path string, params url.Values, auth bool) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.retryDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, &TransportError{Err: ctx.Err()}
			}
		}

		c.throttle.Wait()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, &TransportError{Err: err}
		}
		if auth && c.auth != nil {
			c.auth.Apply(req)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() == nil && transient(err) && attempt < c.maxRetries {
				lastErr = err
				continue
			}
			return nil, &TransportError{Err: err}
		}

		payload, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			if transient(readErr) && attempt < c.maxRetries {
				lastErr = readErr
				continue
			}
			return nil, &TransportError{Err: readErr}
		}

		if cerr := Classify(resp.StatusCode, payload); cerr != nil {
			var rateLimited *RateLimitError
			if errors.As(cerr, &rateLimited) && c.backoffOnRateLimit {
				c.throttle.Backoff()
			}
			return nil, cerr
		}

		return payload, nil
	}

	return nil, &TransportError{Err: lastErr}
}

// transient reports whether a transport failure is worth another attempt.
func transient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.ErrUnexpectedEOF)
}

// fragment trims a payload down to a short context string for error
// reporting.
func fragment(payload []byte) string {
	const max = 60
	s := string(payload)
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}
