package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	api "delicious/internal/client/delicious"
	"delicious/internal/delicious"
)

func feedsCmd() *cobra.Command {
	var (
		user    string
		tag     string
		url     string
		popular bool
	)

	cmd := &cobra.Command{
		Use:   "feeds",
		Short: "Read public bookmark feeds (no credentials needed)",
		Long: `Read public bookmark feeds. Feeds exist for recent bookmarks, popular
bookmarks, a user's bookmarks (optionally by tag), a tag, and a URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			feeds := api.NewFeedClient()

			var (
				entries []delicious.FeedEntry
				err     error
			)
			switch {
			case url != "":
				entries, err = feeds.URL(cmd.Context(), url)
			case user != "":
				entries, err = feeds.User(cmd.Context(), user, tag)
			case popular:
				entries, err = feeds.Popular(cmd.Context(), tag)
			case tag != "":
				entries, err = feeds.Tag(cmd.Context(), tag)
			default:
				entries, err = feeds.Recent(cmd.Context())
			}
			if err != nil {
				return err
			}

			for _, entry := range entries {
				title := entry.Title
				if title == "" {
					title = entry.Link
				}
				fmt.Println(title)
				fmt.Printf("  %s\n", entry.Link)
				if entry.Author != "" {
					fmt.Printf("  by %s\n", entry.Author)
				}
				if len(entry.Tags) > 0 {
					fmt.Printf("  %s\n", strings.Join(entry.Tags, " "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "a user's public bookmarks")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "bookmarks for a tag")
	cmd.Flags().StringVarP(&url, "url", "l", "", "everyone's bookmarks for a URL")
	cmd.Flags().BoolVar(&popular, "popular", false, "popular bookmarks")

	return cmd
}
