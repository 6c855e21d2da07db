package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"delicious/internal/delicious"
	"delicious/internal/formatter"
)

func exportCmd() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection as a versioned document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := cachedPosts(cmd, flagKeepCache)
			if err != nil {
				return err
			}

			coll := delicious.NewCollection()
			for _, post := range posts {
				coll.Upsert(post)
			}

			var f formatter.Formatter
			switch format {
			case "yaml":
				f = &formatter.YAMLFormatter{}
			case "text":
				f = &formatter.TextFormatter{}
			default:
				return fmt.Errorf("unknown export format: %s", format)
			}

			w := colorOutput()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}

			return f.Format(w, coll)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or text")

	return cmd
}
