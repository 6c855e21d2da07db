package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	api "delicious/internal/client/delicious"
	"delicious/internal/delicious"
	"delicious/internal/formatter"
)

func postCmd() *cobra.Command {
	var (
		extended string
		tags     []string
		date     string
		replace  bool
		private  bool
	)

	cmd := &cobra.Command{
		Use:   "post <url> <description>",
		Short: "Bookmark a URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			opts := &api.AddOptions{
				Extended: extended,
				Tags:     tags,
				Replace:  &replace,
			}
			shared := !private
			opts.Shared = &shared

			if date != "" {
				dt, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
				}
				opts.Date = dt
			}

			if err := client.PostsAdd(cmd.Context(), args[0], args[1], opts); err != nil {
				return err
			}

			fmt.Printf("%s posted %q <%s>\n", okMark("*"), args[1], args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&extended, "extended", "e", "", "extended note")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	cmd.Flags().StringVar(&date, "date", "", "creation date (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "replace an existing bookmark for this URL")
	cmd.Flags().BoolVar(&private, "private", false, "don't share the bookmark")

	return cmd
}

func getCmd() *cobra.Command {
	var (
		tag  string
		url  string
		date string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch posts by tag, date or URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			opts := &api.GetOptions{Tag: tag, URL: url}
			if date != "" {
				dt, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
				}
				opts.Date = dt
			}

			posts, err := client.PostsGet(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printPosts(posts)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "filter by tag")
	cmd.Flags().StringVarP(&url, "url", "l", "", "fetch the post for one URL")
	cmd.Flags().StringVar(&date, "date", "", "fetch posts from one day (YYYY-MM-DD)")

	return cmd
}

func allCmd() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "all",
		Short: "List every post, from the local cache when fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := cachedPosts(cmd, flagKeepCache)
			if err != nil {
				return err
			}

			if tag != "" {
				filtered := posts[:0]
				for _, post := range posts {
					if post.HasTag(tag) {
						filtered = append(filtered, post)
					}
				}
				posts = filtered
			}

			return printPosts(posts)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "filter by tag")

	return cmd
}

func recentCmd() *cobra.Command {
	var (
		tag   string
		count int
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Fetch the most recent posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			posts, err := client.PostsRecent(cmd.Context(), tag, count)
			if err != nil {
				return err
			}
			return printPosts(posts)
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "filter by tag")
	cmd.Flags().IntVarP(&count, "count", "n", 15, "number of posts (max 100)")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <url>...",
		Short: "Delete one or more bookmarks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			for _, url := range args {
				if err := client.PostsDelete(cmd.Context(), url); err != nil {
					return fmt.Errorf("delete %s: %w", url, err)
				}
				fmt.Printf("%s deleted %q\n", okMark("*"), url)
			}
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Print the time of the last change to the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			t, err := client.PostsUpdate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Posts last updated on: %s (UTC)\n", t.UTC().Format(time.RFC3339))
			return nil
		},
	}
}

func datesCmd() *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "dates",
		Short: "Print per-day post counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			dates, err := client.PostsDates(cmd.Context(), tag)
			if err != nil {
				return err
			}
			for _, d := range dates {
				fmt.Printf("%s\t%d\n", d.Date.Format("2006-01-02"), d.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "filter by tag")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print collection statistics from the caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := cachedPosts(cmd, flagKeepCache)
			if err != nil {
				return err
			}
			tags, err := cachedTags(cmd, flagKeepCache)
			if err != nil {
				return err
			}

			fmt.Printf("Posts: %d\n", len(posts))
			fmt.Printf("Tags: %d\n", len(tags))

			low, high := 0, 0
			for _, post := range posts {
				n := len(post.Tags)
				if low == 0 || n < low {
					low = n
				}
				if n > high {
					high = n
				}
			}
			fmt.Printf("Tags per post (min/max): %d/%d\n", low, high)
			return nil
		},
	}
}

func printPosts(posts []delicious.Post) error {
	coll := delicious.NewCollection()
	for _, post := range posts {
		coll.Upsert(post)
	}
	var f formatter.TextFormatter
	return f.Format(colorOutput(), coll)
}
