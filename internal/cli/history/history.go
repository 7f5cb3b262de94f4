package history

import (
	"github.com/ooni/onionoo/internal/cli/query"
	"github.com/ooni/onionoo/internal/cli/render"
	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/internal/histstats"
	"github.com/ooni/onionoo/internal/output"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:               "history <bandwidth|weights|clients|uptime>",
		Short:             "Summarize the histories of relays and bridges",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: query.EndpointNames,
	}
	flags := query.Register(cmd)
	window := cmd.Flags().String("window", "", "Only summarize this history window (e.g., 1_month)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		endpoint, err := query.Endpoint(args[0])
		if err != nil {
			return err
		}
		if endpoint == onionoo.Summary || endpoint == onionoo.Details {
			return errors.Errorf("the %s endpoint does not return histories", endpoint.Name())
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
		doc, err := ctx.Client.Fetch(cmd.Context(), endpoint, params)
		if err != nil {
			return err
		}
		series, err := histstats.Collect(doc)
		if err != nil {
			return err
		}
		items := render.HistorySummaries(series, *window)
		if ctx.JSON {
			if items == nil {
				items = []output.HistoryItemData{}
			}
			return render.JSON(cmd.OutOrStdout(), items)
		}
		output.SectionTitle(endpoint.Name() + " histories")
		for _, item := range items {
			output.HistoryItem(item)
		}
		return nil
	}

	root.Cmd.AddCommand(cmd)
}
