package delicious

import (
	"net/url"
	"sort"

	"delicious/internal/delicious"
)

// Endpoint describes one remote operation: its path, parameter contract,
// whether it needs credentials and the response shape it returns.
type Endpoint struct {
	Path     string
	Required []string
	Optional []string
	Auth     bool
	Shape    delicious.ResultKind
}

var endpoints = map[string]Endpoint{
	"posts/add": {
		Path:     "posts/add",
		Required: []string{"url", "description"},
		Optional: []string{"extended", "tags", "dt", "replace", "shared"},
		Auth:     true,
		Shape:    delicious.KindResult,
	},
	"posts/delete": {
		Path:     "posts/delete",
		Required: []string{"url"},
		Auth:     true,
		Shape:    delicious.KindResult,
	},
	"posts/get": {
		Path:     "posts/get",
		Optional: []string{"tag", "dt", "url", "hashes", "meta"},
		Auth:     true,
		Shape:    delicious.KindPosts,
	},
	"posts/recent": {
		Path:     "posts/recent",
		Optional: []string{"tag", "count"},
		Auth:     true,
		Shape:    delicious.KindPosts,
	},
	"posts/all": {
		Path:     "posts/all",
		Optional: []string{"tag", "start", "results", "fromdt", "todt", "meta"},
		Auth:     true,
		Shape:    delicious.KindPosts,
	},
	"posts/dates": {
		Path:     "posts/dates",
		Optional: []string{"tag"},
		Auth:     true,
		Shape:    delicious.KindDates,
	},
	"posts/update": {
		Path:  "posts/update",
		Auth:  true,
		Shape: delicious.KindUpdate,
	},
	"tags/get": {
		Path:  "tags/get",
		Auth:  true,
		Shape: delicious.KindTags,
	},
	"tags/rename": {
		Path:     "tags/rename",
		Required: []string{"old", "new"},
		Auth:     true,
		Shape:    delicious.KindResult,
	},
	"tags/bundles/all": {
		Path:  "tags/bundles/all",
		Auth:  true,
		Shape: delicious.KindBundles,
	},
	"tags/bundles/set": {
		Path:     "tags/bundles/set",
		Required: []string{"bundle", "tags"},
		Auth:     true,
		Shape:    delicious.KindResult,
	},
	"tags/bundles/delete": {
		Path:     "tags/bundles/delete",
		Required: []string{"bundle"},
		Auth:     true,
		Shape:    delicious.KindResult,
	},
}

// Lookup returns the descriptor for a logical operation name.
func Lookup(name string) (Endpoint, bool) {
	ep, ok := endpoints[name]
	return ep, ok
}

// EndpointNames lists all known operations, sorted.
func EndpointNames() []string {
	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks params against the descriptor. Missing required
// parameters and parameters outside the contract both fail.
func (e Endpoint) Validate(params url.Values) error {
	allowed := make(map[string]struct{}, len(e.Required)+len(e.Optional))
	for _, name := range e.Required {
		allowed[name] = struct{}{}
	}
	for _, name := range e.Optional {
		allowed[name] = struct{}{}
	}

	var missing []string
	for _, name := range e.Required {
		if params.Get(name) == "" {
			missing = append(missing, name)
		}
	}

	var unknown []string
	for name := range params {
		if _, ok := allowed[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	if len(missing) > 0 || len(unknown) > 0 {
		return &ValidationError{Endpoint: e.Path, Missing: missing, Unknown: unknown}
	}
	return nil
}
