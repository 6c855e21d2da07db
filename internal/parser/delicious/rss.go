package delicious

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/net/html/charset"

	"delicious/internal/delicious"
)

// Feed shapes. The service has emitted both RSS 2.0 (<rss><channel>) and
// the older RSS 1.0 (<rdf:RDF>) layouts; items are the same either way.

type feedItemXML struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Creator     string   `xml:"creator"`
	PubDate     string   `xml:"pubDate"`
	Date        string   `xml:"date"`
	Categories  []string `xml:"category"`
}

type rssXML struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title string        `xml:"title"`
		Items []feedItemXML `xml:"item"`
	} `xml:"channel"`
}

type rdfXML struct {
	XMLName xml.Name      `xml:"RDF"`
	Items   []feedItemXML `xml:"item"`
}

// ParseFeed converts a public feed payload into an ordered sequence of
// entries. This shape is distinct from the API XML and the two are never
// conflated.
func ParseFeed(r io.Reader) ([]delicious.FeedEntry, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	root, err := firstElement(dec)
	if err != nil {
		return nil, err
	}

	var items []feedItemXML
	switch root.Name.Local {
	case "rss":
		var doc rssXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		items = doc.Channel.Items
	case "RDF":
		var doc rdfXML
		if err := dec.DecodeElement(&doc, root); err != nil {
			return nil, err
		}
		items = doc.Items
	default:
		return nil, fmt.Errorf("unrecognized feed element <%s>", root.Name.Local)
	}

	entries := make([]delicious.FeedEntry, 0, len(items))
	for _, item := range items {
		published, err := parseFeedTime(item.PubDate, item.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid publication time for %q: %w", item.Link, err)
		}

		var tags []string
		for _, category := range item.Categories {
			if trimmed := strings.TrimSpace(category); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}

		entries = append(entries, delicious.FeedEntry{
			Title:     strings.TrimSpace(item.Title),
			Link:      item.Link,
			Summary:   strings.TrimSpace(item.Description),
			Author:    strings.TrimSpace(item.Creator),
			Published: published,
			Tags:      tags,
		})
	}

	return entries, nil
}

var feedTimeFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
}

func parseFeedTime(pubDate, dcDate string) (time.Time, error) {
	raw := strings.TrimSpace(pubDate)
	if raw == "" {
		raw = strings.TrimSpace(dcDate)
	}
	if raw == "" {
		return time.Time{}, nil
	}
	for _, format := range feedTimeFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}
