package endpoints

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ooni/onionoo/internal/cli/render"
	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/internal/util"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/spf13/cobra"
)

// Info describes an endpoint.
type Info struct {
	Name        string `json:"name"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Relays      bool   `json:"relays"`
	Bridges     bool   `json:"bridges"`
}

// Catalog returns information about all the endpoints.
func Catalog() []Info {
	var out []Info
	for _, e := range onionoo.AllEndpoints() {
		out = append(out, Info{
			Name:        e.Name(),
			Method:      e.Method(),
			Path:        e.Path(),
			Description: e.Description(),
			Relays:      e.AppliesToRelays(),
			Bridges:     e.AppliesToBridges(),
		})
	}
	return out
}

// appliesTo returns a human readable list of node types.
func appliesTo(info Info) string {
	switch {
	case info.Relays && info.Bridges:
		return "relays, bridges"
	case info.Relays:
		return "relays"
	default:
		return "bridges"
	}
}

// Print writes the catalog to w.
func Print(w io.Writer, catalog []Info) error {
	bold := color.New(color.Bold)
	for _, info := range catalog {
		header := fmt.Sprintf("%s %s", util.RightPad(bold.Sprint(info.Name), 10),
			color.CyanString("%s %s", info.Method, info.Path))
		if _, err := fmt.Fprintf(w, "%s  [%s]\n%s\n\n", header, appliesTo(info),
			util.Indent(info.Description, 72, "    ")); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	cmd := &cobra.Command{
		Use:   "endpoints",
		Short: "List the Onionoo endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.Options.JSON {
				return render.JSON(cmd.OutOrStdout(), Catalog())
			}
			return Print(cmd.OutOrStdout(), Catalog())
		},
	}
	root.Cmd.AddCommand(cmd)
}
