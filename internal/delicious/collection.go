package delicious

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"golang.org/x/mod/semver"
)

// Collection holds posts deduplicated by URL, preserving insertion order.
// Upserting an existing URL merges the two records instead of duplicating.
type Collection struct {
	posts []Post
	urls  map[string]int
}

func NewCollection() *Collection {
	return &Collection{
		posts: []Post{},
		urls:  make(map[string]int),
	}
}

func (c *Collection) Add(post Post) int {
	id := len(c.posts)
	c.posts = append(c.posts, post)
	c.urls[post.URL] = id
	return id
}

func (c *Collection) Upsert(post Post) int {
	if id, exists := c.urls[post.URL]; exists {
		c.posts[id] = merge(c.posts[id], post)
		return id
	}
	return c.Add(post)
}

func (c *Collection) Get(url string) (Post, bool) {
	if id, exists := c.urls[url]; exists {
		return c.posts[id], true
	}
	return Post{}, false
}

func (c *Collection) Len() int {
	return len(c.posts)
}

func (c *Collection) Posts() []Post {
	return c.posts
}

// merge keeps the earlier timestamp, unions tags and prefers non-empty
// text fields from the existing record.
func merge(existing, other Post) Post {
	if !other.Time.IsZero() && (existing.Time.IsZero() || other.Time.Before(existing.Time)) {
		existing.Time = other.Time
	}

	seen := make(map[string]struct{})
	for _, tag := range existing.Tags {
		seen[tag] = struct{}{}
	}
	for _, tag := range other.Tags {
		seen[tag] = struct{}{}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	existing.Tags = tags

	if existing.Description == "" {
		existing.Description = other.Description
	}
	if existing.Extended == "" {
		existing.Extended = other.Extended
	}
	existing.Shared = existing.Shared || other.Shared

	return existing
}

type Version string

const ExpectedVersion Version = "v0.1.0"

func NewVersion(v string) (Version, error) {
	if len(v) > 0 && v[0] != 'v' {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid semantic version: %s", v)
	}
	return Version(v), nil
}

func (v Version) String() string {
	s := string(v)
	if len(s) > 0 && s[0] == 'v' {
		return s[1:]
	}
	return s
}

func (v Version) IsCompatible() bool {
	return semver.Major(string(v)) == semver.Major(string(ExpectedVersion))
}

type postRepr struct {
	URL         string   `yaml:"url"                json:"url"`
	Description string   `yaml:"description"        json:"description"`
	Extended    string   `yaml:"extended,omitempty" json:"extended,omitempty"`
	Tags        []string `yaml:"tags"               json:"tags"`
	Time        string   `yaml:"time"               json:"time"`
	Shared      bool     `yaml:"shared"             json:"shared"`
}

type collectionRepr struct {
	Version string     `yaml:"version" json:"version"`
	Length  int        `yaml:"length"  json:"length"`
	Value   []postRepr `yaml:"value"   json:"value"`
}

func (c *Collection) toRepr() collectionRepr {
	value := make([]postRepr, len(c.posts))
	for i, post := range c.posts {
		tags := post.Tags
		if tags == nil {
			tags = []string{}
		}
		value[i] = postRepr{
			URL:         post.URL,
			Description: post.Description,
			Extended:    post.Extended,
			Tags:        tags,
			Time:        post.Time.UTC().Format(time.RFC3339),
			Shared:      post.Shared,
		}
	}
	return collectionRepr{
		Version: ExpectedVersion.String(),
		Length:  len(c.posts),
		Value:   value,
	}
}

func (c *Collection) fromRepr(s collectionRepr) error {
	version, err := NewVersion(s.Version)
	if err != nil {
		return fmt.Errorf("invalid version in serialized data: %w", err)
	}

	if !version.IsCompatible() {
		return fmt.Errorf(
			"incompatible version: %s, expected compatible with %s",
			version.String(),
			ExpectedVersion.String(),
		)
	}

	c.posts = make([]Post, 0, len(s.Value))
	c.urls = make(map[string]int)

	for _, repr := range s.Value {
		t, err := time.Parse(time.RFC3339, repr.Time)
		if err != nil {
			return fmt.Errorf("invalid time in serialized data: %w", err)
		}
		c.Upsert(Post{
			URL:         repr.URL,
			Description: repr.Description,
			Extended:    repr.Extended,
			Tags:        repr.Tags,
			Time:        t,
			Shared:      repr.Shared,
		})
	}

	return nil
}

func (c *Collection) MarshalYAML() (any, error) {
	return c.toRepr(), nil
}

func (c *Collection) UnmarshalYAML(unmarshal func(any) error) error {
	var aux collectionRepr
	if err := unmarshal(&aux); err != nil {
		return err
	}
	return c.fromRepr(aux)
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toRepr())
}

func (c *Collection) UnmarshalJSON(data []byte) error {
	var aux collectionRepr
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return c.fromRepr(aux)
}
