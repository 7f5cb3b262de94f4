package url

import (
	"fmt"

	"github.com/ooni/onionoo/internal/cli/query"
	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:               "url <endpoint>",
		Short:             "Print the URL of a query without sending it",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: query.EndpointNames,
	}
	flags := query.Register(cmd)

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
		URL, err := ctx.Client.URL(endpoint.Path(), params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), URL)
		return err
	}

	root.Cmd.AddCommand(cmd)
}
