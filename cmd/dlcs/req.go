package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	api "delicious/internal/client/delicious"
	"delicious/internal/delicious"
)

func reqCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "req <path> [param=value]...",
		Short: "Request an arbitrary API path",
		Long: `Request data from a raw API path, e.g.:

    dlcs req posts/get tag=energy
    dlcs req tags/bundles/all

Known paths: ` + strings.Join(api.EndpointNames(), ", ") + `

With --dump the raw response XML is printed instead of a parsed form.
Note that the v1 API is not RESTful, so data can be changed this way too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			params := url.Values{}
			for _, arg := range args[1:] {
				key, value, found := strings.Cut(arg, "=")
				if !found {
					return fmt.Errorf("parameter %q is not of the form key=value", arg)
				}
				params.Add(key, value)
			}

			if dump {
				payload, err := client.RequestRaw(cmd.Context(), args[0], params)
				if err != nil {
					return err
				}
				_, err = os.Stdout.Write(payload)
				return err
			}

			res, err := client.Request(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printResult(res)
		},
	}

	cmd.Flags().BoolVarP(&dump, "dump", "d", false, "print the raw response")

	return cmd
}

// printResult emits the populated variant keyed by its kind name,
// mirroring the response shape.
func printResult(res *delicious.Result) error {
	var v any
	switch res.Kind {
	case delicious.KindPosts:
		v = map[string]any{"posts": res.Posts}
	case delicious.KindTags:
		v = map[string]any{"tags": res.Tags}
	case delicious.KindDates:
		v = map[string]any{"dates": res.Dates}
	case delicious.KindBundles:
		v = map[string]any{"bundles": res.Bundles}
	case delicious.KindUpdate:
		v = map[string]any{"update": res.Update}
	default:
		v = map[string]any{"result": res.Code}
	}

	encoder := yaml.NewEncoder(os.Stdout, yaml.Indent(2))
	defer encoder.Close()
	return encoder.Encode(v)
}
