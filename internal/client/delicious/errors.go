package delicious

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html/charset"
)

// Error is the common marker for every failure this client produces.
// Callers distinguish kinds with errors.As against the concrete types
// below; no string parsing is needed.
type Error interface {
	error
	deliciousError()
}

// ValidationError reports missing or unrecognized parameters for an
// endpoint. Raised before any network activity.
type ValidationError struct {
	Endpoint string
	Missing  []string
	Unknown  []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required parameters: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown parameters: %s", strings.Join(e.Unknown, ", ")))
	}
	if len(parts) == 0 {
		parts = append(parts, "invalid parameters")
	}
	return fmt.Sprintf("%s: %s", e.Endpoint, strings.Join(parts, "; "))
}

func (e *ValidationError) deliciousError() {}

// AuthenticationError reports absent or rejected credentials. Status is
// zero when credentials were missing before any request was made.
type AuthenticationError struct {
	Status int
}

func (e *AuthenticationError) Error() string {
	if e.Status == 0 {
		return "credentials required but not provided"
	}
	return fmt.Sprintf("authentication rejected (status %d)", e.Status)
}

func (e *AuthenticationError) deliciousError() {}

// RateLimitError reports that the service is throttling this client.
// The client never retries it silently.
type RateLimitError struct {
	Status int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("request rate exceeded (status %d), try again later", e.Status)
}

func (e *RateLimitError) deliciousError() {}

// TransportError reports a network-level failure (Err set) or an
// otherwise unclassified non-success status.
type TransportError struct {
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) deliciousError() {}

// ParseError reports a payload that is not well-formed markup or does not
// match the expected shape. It indicates a protocol or service change and
// is never retried.
type ParseError struct {
	Err      error
	Fragment string
}

func (e *ParseError) Error() string {
	if e.Fragment != "" {
		return fmt.Sprintf("unparseable response: %v (near %q)", e.Err, e.Fragment)
	}
	return fmt.Sprintf("unparseable response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) deliciousError() {}

// APIError carries an explicit service-level failure message, surfaced
// verbatim from the <result> payload.
type APIError struct {
	Code string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s", e.Code)
}

func (e *APIError) deliciousError() {}

// Classify maps a completed HTTP exchange to the matching error kind, or
// nil for success. This is the single place failure classification
// happens. Priority: authentication status, rate-limit status or payload,
// service failure payload, any other non-success status. Transport-level
// failures never reach here; the dispatcher wraps them directly.
func Classify(status int, payload []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthenticationError{Status: status}
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return &RateLimitError{Status: status}
	}

	if code, ok := resultCode(payload); ok && !resultOK(code) {
		if strings.Contains(strings.ToLower(code), "try again later") {
			return &RateLimitError{Status: status}
		}
		return &APIError{Code: code}
	}

	if status != http.StatusOK {
		return &TransportError{Status: status}
	}

	return nil
}

// resultCode extracts the code or message from a <result> payload.
// The service emits both <result code="done"/> and <result>done</result>.
func resultCode(payload []byte) (string, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return "", false
	}

	dec := xml.NewDecoder(bytes.NewReader(trimmed))
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local != "result" {
			return "", false
		}

		var res struct {
			Code string `xml:"code,attr"`
			Text string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&res, &se); err != nil {
			return "", false
		}
		if res.Code != "" {
			return res.Code, true
		}
		return strings.TrimSpace(res.Text), true
	}
}

func resultOK(code string) bool {
	switch strings.TrimSpace(code) {
	case "done", "ok":
		return true
	}
	return false
}
