package delicious

import "time"

// Tag is a per-tag usage summary from tags/get.
type Tag struct {
	Name  string `yaml:"tag"   json:"tag"`
	Count int    `yaml:"count" json:"count"`
}

// DateCount is a per-day post count from posts/dates.
type DateCount struct {
	Date  time.Time `yaml:"date"  json:"date"`
	Count int       `yaml:"count" json:"count"`
}

// Bundle groups tags under a name (tags/bundles/all).
type Bundle struct {
	Name string   `yaml:"name" json:"name"`
	Tags []string `yaml:"tags" json:"tags"`
}

// Update is the last-change timestamp from posts/update.
type Update struct {
	Time time.Time `yaml:"time" json:"time"`
}

// FeedEntry is one item from a public bookmark feed.
type FeedEntry struct {
	Title     string    `yaml:"title"                json:"title"`
	Link      string    `yaml:"link"                 json:"link"`
	Summary   string    `yaml:"summary,omitempty"    json:"summary,omitempty"`
	Author    string    `yaml:"author,omitempty"     json:"author,omitempty"`
	Published time.Time `yaml:"published"            json:"published"`
	Tags      []string  `yaml:"tags,omitempty"       json:"tags,omitempty"`
}

// ResultKind names the shape of an API response. Different endpoints
// return different shapes; a Result carries exactly one of them.
type ResultKind string

const (
	KindPosts   ResultKind = "posts"
	KindTags    ResultKind = "tags"
	KindDates   ResultKind = "dates"
	KindBundles ResultKind = "bundles"
	KindUpdate  ResultKind = "update"
	KindResult  ResultKind = "result"
)

// Result is a parsed API response. Kind selects which field is populated,
// mirroring the root element of the underlying XML.
type Result struct {
	Kind    ResultKind
	Posts   []Post
	Tags    []Tag
	Dates   []DateCount
	Bundles []Bundle
	Update  *Update

	// Code holds the service's <result> code or message text.
	Code string
}

// OK reports whether a result-shaped response signals success.
func (r *Result) OK() bool {
	if r.Kind != KindResult {
		return false
	}
	switch r.Code {
	case "done", "ok":
		return true
	}
	return false
}
