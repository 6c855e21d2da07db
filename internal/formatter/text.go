package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"delicious/internal/delicious"
)

// TextFormatter prints one block per post for terminal reading.
type TextFormatter struct{}

var (
	titleColor = color.New(color.Bold)
	urlColor   = color.New(color.FgBlue)
	tagColor   = color.New(color.FgGreen)
	mutedColor = color.New(color.Faint)
)

func (f *TextFormatter) Format(w io.Writer, collection *delicious.Collection) error {
	for i, post := range collection.Posts() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writePost(w, post); err != nil {
			return err
		}
	}
	return nil
}

func writePost(w io.Writer, post delicious.Post) error {
	title := post.Description
	if title == "" {
		title = post.URL
	}
	if _, err := titleColor.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := urlColor.Fprintf(w, "  %s\n", post.URL); err != nil {
		return err
	}
	if post.Extended != "" {
		if _, err := fmt.Fprintf(w, "  %s\n", post.Extended); err != nil {
			return err
		}
	}
	if len(post.Tags) > 0 {
		if _, err := tagColor.Fprintf(w, "  %s\n", strings.Join(post.Tags, " ")); err != nil {
			return err
		}
	}
	if !post.Time.IsZero() {
		if _, err := mutedColor.Fprintf(w, "  %s\n", post.Time.Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return nil
}
