package delicious

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
)

func TestCollectionAddAndGet(t *testing.T) {
	c := NewCollection()
	c.Add(Post{URL: "http://example.com/", Description: "Example"})

	post, ok := c.Get("http://example.com/")
	if !ok {
		t.Fatal("expected post to be present")
	}
	if post.Description != "Example" {
		t.Errorf("unexpected description %q", post.Description)
	}
	if _, ok := c.Get("http://missing.example/"); ok {
		t.Error("expected miss for unknown url")
	}
}

func TestCollectionUpsertMerges(t *testing.T) {
	earlier := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	c := NewCollection()
	c.Upsert(Post{
		URL:         "http://example.com/",
		Description: "Example",
		Tags:        []string{"one"},
		Time:        later,
	})
	c.Upsert(Post{
		URL:      "http://example.com/",
		Extended: "notes",
		Tags:     []string{"two", "one"},
		Time:     earlier,
		Shared:   true,
	})

	if c.Len() != 1 {
		t.Fatalf("expected 1 post, got %d", c.Len())
	}
	post, _ := c.Get("http://example.com/")
	if post.Time != earlier {
		t.Errorf("expected earliest time, got %v", post.Time)
	}
	if want := []string{"one", "two"}; !reflect.DeepEqual(post.Tags, want) {
		t.Errorf("expected tag union %v, got %v", want, post.Tags)
	}
	if post.Description != "Example" {
		t.Errorf("expected existing description kept, got %q", post.Description)
	}
	if post.Extended != "notes" {
		t.Errorf("expected extended filled in, got %q", post.Extended)
	}
	if !post.Shared {
		t.Error("expected shared flag to stick")
	}
}

func TestCollectionPreservesOrder(t *testing.T) {
	c := NewCollection()
	c.Upsert(Post{URL: "http://a.example/"})
	c.Upsert(Post{URL: "http://b.example/"})
	c.Upsert(Post{URL: "http://a.example/", Tags: []string{"again"}})

	posts := c.Posts()
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].URL != "http://a.example/" || posts[1].URL != "http://b.example/" {
		t.Errorf("unexpected order: %v", posts)
	}
}

func TestCollectionYAMLRoundTrip(t *testing.T) {
	c := NewCollection()
	c.Add(Post{
		URL:         "http://example.com/",
		Description: "Example",
		Tags:        []string{"example", "web"},
		Time:        time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
		Shared:      true,
	})

	data, err := yaml.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := NewCollection()
	if err := yaml.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.Len() != 1 {
		t.Fatalf("expected 1 post, got %d", restored.Len())
	}
	got, _ := restored.Get("http://example.com/")
	want, _ := c.Get("http://example.com/")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestCollectionRejectsIncompatibleVersion(t *testing.T) {
	data := strings.Join([]string{
		"version: 9.0.0",
		"length: 0",
		"value: []",
		"",
	}, "\n")

	c := NewCollection()
	err := yaml.Unmarshal([]byte(data), c)
	if err == nil {
		t.Fatal("expected incompatible version error")
	}
	if !strings.Contains(err.Error(), "incompatible version") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVersionCompatibility(t *testing.T) {
	for _, tt := range []struct {
		raw        string
		compatible bool
	}{
		{"0.1.0", true},
		{"v0.1.0", true},
		{"0.2.5", true},
		{"1.0.0", false},
	} {
		v, err := NewVersion(tt.raw)
		if err != nil {
			t.Fatalf("%s: %v", tt.raw, err)
		}
		if v.IsCompatible() != tt.compatible {
			t.Errorf("%s: expected compatible=%v", tt.raw, tt.compatible)
		}
	}

	if _, err := NewVersion("not.a.version"); err == nil {
		t.Error("expected error for invalid version")
	}
}

func TestSplitTags(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"one", []string{"one"}},
		{"b a c", []string{"a", "b", "c"}},
		{"dup dup other", []string{"dup", "other"}},
	} {
		if got := SplitTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags([]string{"a", "b"}); got != "a b" {
		t.Errorf("unexpected join %q", got)
	}
}

func TestHasTag(t *testing.T) {
	post := Post{Tags: []string{"go", "web"}}
	if !post.HasTag("go") {
		t.Error("expected tag present")
	}
	if post.HasTag("rust") {
		t.Error("expected tag absent")
	}
}
