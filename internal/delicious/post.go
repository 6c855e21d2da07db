package delicious

import (
	"sort"
	"strings"
	"time"
)

// Post is a single bookmarked URL in a user's collection. The URL is the
// primary key within one account.
type Post struct {
	URL         string    `yaml:"url"                json:"url"`
	Description string    `yaml:"description"        json:"description"`
	Extended    string    `yaml:"extended,omitempty" json:"extended,omitempty"`
	Tags        []string  `yaml:"tags"               json:"tags"`
	Hash        string    `yaml:"hash,omitempty"     json:"hash,omitempty"`
	Meta        string    `yaml:"meta,omitempty"     json:"meta,omitempty"`
	Time        time.Time `yaml:"time"               json:"time"`
	Shared      bool      `yaml:"shared"             json:"shared"`
}

// SplitTags turns the service's space-separated tag attribute into a
// deduplicated, sorted slice. Empty fields are dropped.
func SplitTags(s string) []string {
	seen := make(map[string]struct{})
	for _, tag := range strings.Fields(s) {
		seen[tag] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// JoinTags is the inverse of SplitTags, producing the wire form.
func JoinTags(tags []string) string {
	return strings.Join(tags, " ")
}

func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
