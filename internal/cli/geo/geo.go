package geo

import (
	"github.com/apex/log"
	"github.com/ooni/onionoo/internal/cli/query"
	"github.com/ooni/onionoo/internal/cli/render"
	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/internal/geodist"
	"github.com/ooni/onionoo/internal/output"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Grouping values of the --by flag.
const (
	ByCountry   = "country"
	ByAS        = "as"
	ByLocations = "locations"
)

// DefaultParameters are the parameters used unless overridden by flags.
func DefaultParameters() onionoo.QueryParameters {
	return onionoo.NewQueryParameters().Type(onionoo.TypeRelay).Running(true)
}

func init() {
	cmd := &cobra.Command{
		Use:   "geo",
		Short: "Show the geographic distribution of running relays",
		Args:  cobra.NoArgs,
	}
	flags := query.Register(cmd)
	by := cmd.Flags().String("by", ByCountry, "Group relays by country, as, or locations")
	top := cmd.Flags().Int("top", 10, "Show at most this number of rows (negative means all)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch *by {
		case ByCountry, ByAS, ByLocations:
		default:
			return errors.Errorf("--by: unknown grouping %q", *by)
		}
		params, err := flags.Parameters(cmd, DefaultParameters())
		if err != nil {
			return err
		}
		ctx, err := root.Init()
		if err != nil {
			return err
		}
		defer ctx.Close()
		doc, err := ctx.Client.Details(cmd.Context(), params)
		if err != nil {
			return err
		}
		log.Debugf("computing distribution of %d relays", len(doc.Relays))

		if *by == ByLocations {
			locations := geodist.Locations(doc.Relays)
			if ctx.JSON {
				return render.JSON(cmd.OutOrStdout(), locations)
			}
			output.SectionTitle("Relay locations")
			for _, location := range locations {
				output.Table(location.Nickname, log.Fields{
					"Country":   location.Country,
					"City":      location.City,
					"Latitude":  location.Latitude,
					"Longitude": location.Longitude,
				})
			}
			return nil
		}

		var distribution geodist.Distribution
		switch *by {
		case ByCountry:
			distribution = geodist.ByCountry(doc.Relays)
		case ByAS:
			distribution = geodist.ByAS(doc.Relays)
		}
		distribution = distribution.Top(*top)
		if ctx.JSON {
			return render.JSON(cmd.OutOrStdout(), distribution)
		}
		output.SectionTitle("Relays by " + *by)
		for _, row := range distribution {
			output.DistributionItem(output.DistributionItemData{
				Key:      row.Key,
				Label:    row.Label,
				Count:    row.Count,
				Fraction: row.Fraction,
				Weight:   row.Weight,
			})
		}
		return nil
	}

	root.Cmd.AddCommand(cmd)
}
