package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func tagsCmd() *cobra.Command {
	var (
		minCount int
		find     string
	)

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with their usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := cachedTags(cmd, flagKeepCache)
			if err != nil {
				return err
			}

			for _, tag := range tags {
				if tag.Count < minCount {
					continue
				}
				if find != "" && !strings.Contains(tag.Name, find) {
					continue
				}
				fmt.Printf("%s\t%d\n", tag.Name, tag.Count)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&minCount, "min-count", 0, "only tags used at least this often")
	cmd.Flags().StringVar(&find, "find", "", "only tags containing this text")

	return cmd
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a tag across the collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.TagsRename(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s %q -> %q\n", okMark("*"), args[0], args[1])
			return nil
		},
	}
}

func bundlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundles",
		Short: "List tag bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			bundles, err := client.BundlesAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, bundle := range bundles {
				fmt.Printf("%s\t%s\n", bundle.Name, strings.Join(bundle.Tags, " "))
			}
			return nil
		},
	}
}

func bundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bundle <name> <tag>...",
		Short: "Bundle tags under a name, replacing previous contents",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			name, tags := args[0], args[1:]
			if err := client.BundlesSet(cmd.Context(), name, tags); err != nil {
				return err
			}
			fmt.Printf("%s %q -> %q\n", okMark("*"), name, strings.Join(tags, " "))
			return nil
		},
	}
}

func deleteBundleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deletebundle <name>",
		Short: "Delete an entire bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if err := client.BundlesDelete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("%s deleted bundle %q\n", okMark("*"), args[0])
			return nil
		},
	}
}
