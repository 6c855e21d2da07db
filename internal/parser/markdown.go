package parser

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"delicious/internal/delicious"
)

// MarkdownParser reads a markdown bookmark list: links and autolinks
// become posts, headings above them become tags, and a level-1 heading
// that parses as a date sets the creation time for the posts below it.
type MarkdownParser struct{}

type markdownState struct {
	coll        *delicious.Collection
	currentDate time.Time
	labels      []string
}

func (s *markdownState) savePost(linkURL, linkTitle string) {
	var tags []string
	for _, label := range s.labels {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			tags = append(tags, strings.ToLower(strings.ReplaceAll(trimmed, " ", "-")))
		}
	}

	s.coll.Upsert(delicious.Post{
		URL:         linkURL,
		Description: linkTitle,
		Tags:        tags,
		Time:        s.currentDate,
	})
}

func extractText(node ast.Node, content []byte) string {
	var buf bytes.Buffer

	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if textNode, ok := n.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(content))
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(node)

	return strings.TrimSpace(buf.String())
}

func (p *MarkdownParser) Parse(r io.Reader) (*delicious.Collection, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	state := markdownState{
		coll:   delicious.NewCollection(),
		labels: []string{},
	}

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := extractText(node, content)
			if node.Level == 1 {
				if parsed, err := time.Parse("January 2, 2006", headingText); err == nil {
					state.currentDate = parsed
				}
				state.labels = []string{}
				break
			}

			level := node.Level - 2
			if level < len(state.labels) {
				state.labels = state.labels[:level]
			}
			for len(state.labels) <= level {
				state.labels = append(state.labels, "")
			}
			state.labels[level] = headingText

		case *ast.Link:
			if linkURL := string(node.Destination); linkURL != "" {
				state.savePost(linkURL, extractText(node, content))
			}

		case *ast.AutoLink:
			if linkURL := string(node.URL(content)); linkURL != "" {
				state.savePost(linkURL, "")
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return state.coll, nil
}
