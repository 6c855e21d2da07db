package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	api "delicious/internal/client/delicious"
	"delicious/internal/parser"
)

func importCmd() *cobra.Command {
	var (
		replace bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.md>",
		Short: "Post every link from a markdown bookmark list",
		Long: `Parse a markdown file and post each link it contains. Headings above a
link become its tags; a level-1 heading that reads like a date ("June 1,
2009") sets the creation date for the links below it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			var md parser.MarkdownParser
			coll, err := md.Parse(file)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			log.Debugf("parsed %d links from %s", coll.Len(), args[0])
			if coll.Len() == 0 {
				fmt.Println("no links found")
				return nil
			}

			if dryRun {
				return printPosts(coll.Posts())
			}

			client, err := newClient()
			if err != nil {
				return err
			}

			for _, post := range coll.Posts() {
				description := post.Description
				if description == "" {
					description = post.URL
				}
				opts := &api.AddOptions{
					Tags:    post.Tags,
					Date:    post.Time,
					Replace: &replace,
				}
				if err := client.PostsAdd(cmd.Context(), post.URL, description, opts); err != nil {
					return fmt.Errorf("post %s: %w", post.URL, err)
				}
				fmt.Printf("%s posted %q <%s>\n", okMark("*"), description, post.URL)
			}

			fmt.Printf("%s imported %d bookmarks\n", okMark("*"), coll.Len())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "replace existing bookmarks for imported URLs")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be posted without posting")

	return cmd
}
