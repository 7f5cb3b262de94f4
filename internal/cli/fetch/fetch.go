package fetch

import (
	"github.com/apex/log"
	"github.com/ooni/onionoo/internal/cli/query"
	"github.com/ooni/onionoo/internal/cli/render"
	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:               "fetch <endpoint>",
		Short:             "Fetch and print an Onionoo document",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: query.EndpointNames,
	}
	flags := query.Register(cmd)
	window := cmd.Flags().String("window", "", "Only print this history window (e.g., 1_month)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		endpoint, err := query.Endpoint(args[0])
		if err != nil {
			return err
		}
		params, err := flags.Parameters(cmd, onionoo.NewQueryParameters())
		if err != nil {
			return err
		}
		ctx, err := root.Init()
		if err != nil {
			return err
		}
		defer ctx.Close()
		log.Debugf("fetching %s%s", endpoint.Path(), params)
		doc, err := ctx.Client.Fetch(cmd.Context(), endpoint, params)
		if err != nil {
			return err
		}
		if ctx.JSON {
			return render.JSON(cmd.OutOrStdout(), doc)
		}
		return render.Document(doc, *window)
	}

	root.Cmd.AddCommand(cmd)
}
