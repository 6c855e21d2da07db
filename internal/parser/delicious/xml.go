package delicious

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"delicious/internal/delicious"
)

// Parse converts an API XML payload into a typed Result. The result kind
// follows the root element, mirroring the shape of the response rather
// than a single fixed schema. Empty container elements mean zero records;
// malformed markup or an unrecognized root is an error, never a partial
// result.
func Parse(r io.Reader) (*delicious.Result, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	root, err := firstElement(dec)
	if err != nil {
		return nil, err
	}

	switch root.Name.Local {
	case "posts":
		var doc postsXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		posts, err := convertPosts(doc.Posts)
		if err != nil {
			return nil, err
		}
		return &delicious.Result{Kind: delicious.KindPosts, Posts: posts}, nil

	case "tags":
		var doc tagsXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		tags := make([]delicious.Tag, 0, len(doc.Tags))
		for _, t := range doc.Tags {
			count, err := atoi(t.Count)
			if err != nil {
				return nil, fmt.Errorf("invalid tag count for %q: %w", t.Tag, err)
			}
			tags = append(tags, delicious.Tag{Name: t.Tag, Count: count})
		}
		return &delicious.Result{Kind: delicious.KindTags, Tags: tags}, nil

	case "dates":
		var doc datesXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		dates := make([]delicious.DateCount, 0, len(doc.Dates))
		for _, d := range doc.Dates {
			day, err := time.Parse("2006-01-02", d.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid date %q: %w", d.Date, err)
			}
			count, err := atoi(d.Count)
			if err != nil {
				return nil, fmt.Errorf("invalid date count for %s: %w", d.Date, err)
			}
			dates = append(dates, delicious.DateCount{Date: day, Count: count})
		}
		return &delicious.Result{Kind: delicious.KindDates, Dates: dates}, nil

	case "bundles":
		var doc bundlesXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		bundles := make([]delicious.Bundle, 0, len(doc.Bundles))
		for _, b := range doc.Bundles {
			bundles = append(bundles, delicious.Bundle{
				Name: b.Name,
				Tags: delicious.SplitTags(b.Tags),
			})
		}
		return &delicious.Result{Kind: delicious.KindBundles, Bundles: bundles}, nil

	case "update":
		var doc updateXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, doc.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid update time %q: %w", doc.Time, err)
		}
		return &delicious.Result{
			Kind:   delicious.KindUpdate,
			Update: &delicious.Update{Time: t},
		}, nil

	case "result":
		var doc resultXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		code := doc.Code
		if code == "" {
			code = strings.TrimSpace(doc.Text)
		}
		return &delicious.Result{Kind: delicious.KindResult, Code: code}, nil
	}

	return nil, fmt.Errorf("unrecognized response element <%s>", root.Name.Local)
}

// firstElement advances the decoder to the document's root element.
func firstElement(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("empty response")
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return &se, nil
		}
	}
}

func convertPosts(raw []postXML) ([]delicious.Post, error) {
	posts := make([]delicious.Post, 0, len(raw))
	for _, p := range raw {
		var t time.Time
		if p.Time != "" {
			parsed, err := time.Parse(time.RFC3339, p.Time)
			if err != nil {
				return nil, fmt.Errorf("invalid post time %q for %s: %w", p.Time, p.Href, err)
			}
			t = parsed
		}
		posts = append(posts, delicious.Post{
			URL:         p.Href,
			Description: p.Description,
			Extended:    p.Extended,
			Tags:        delicious.SplitTags(p.Tags),
			Hash:        p.Hash,
			Meta:        p.Meta,
			Time:        t,
			Shared:      p.Shared != "no",
		})
	}
	return posts, nil
}

func atoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}
