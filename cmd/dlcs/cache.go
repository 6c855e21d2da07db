package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"delicious/internal/delicious"
	parser "delicious/internal/parser/delicious"
)

// The post and tag lists are cached locally as the raw service XML and
// refreshed when posts/update reports a change newer than the file.
// posts/update only notices new posts, so edits may go unseen until the
// cache is cleared.

func cachedPosts(cmd *cobra.Command, keep bool) ([]delicious.Post, error) {
	res, err := cachedResult(cmd, cfg.Cache.Posts, "posts/all", delicious.KindPosts, keep)
	if err != nil {
		return nil, err
	}
	return res.Posts, nil
}

func cachedTags(cmd *cobra.Command, keep bool) ([]delicious.Tag, error) {
	res, err := cachedResult(cmd, cfg.Cache.Tags, "tags/get", delicious.KindTags, keep)
	if err != nil {
		return nil, err
	}
	return res.Tags, nil
}

func cachedResult(cmd *cobra.Command, path, endpoint string, kind delicious.ResultKind, keep bool) (*delicious.Result, error) {
	refresh := false

	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		refresh = true
	} else if !keep {
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		lastUpdate, err := client.PostsUpdate(cmd.Context())
		if err != nil {
			return nil, err
		}
		if lastUpdate.After(info.ModTime()) {
			refresh = true
		}
	}

	if refresh {
		log.Infof("refreshing cache %s from %s", path, endpoint)
		client, err := newClient()
		if err != nil {
			return nil, err
		}
		payload, err := client.RequestRaw(cmd.Context(), endpoint, nil)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, payload, 0600); err != nil {
			return nil, fmt.Errorf("failed to write cache file %s: %w", path, err)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	res, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", path, err)
	}
	if res.Kind != kind {
		return nil, fmt.Errorf("cache file %s holds a %s response, expected %s", path, res.Kind, kind)
	}
	return res, nil
}

func clearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clearcache",
		Short: "Delete the locally cached post and tag lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range []string{cfg.Cache.Posts, cfg.Cache.Tags} {
				if err := os.Remove(path); err != nil {
					if os.IsNotExist(err) {
						continue
					}
					return err
				}
				fmt.Printf("%s deleted %q\n", okMark("*"), path)
			}
			return nil
		},
	}
}
