package params

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ooni/onionoo/internal/cli/query"
	"github.com/ooni/onionoo/internal/cli/render"
	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/internal/util"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/spf13/cobra"
)

// Info describes a query parameter.
type Info struct {
	Name        string `json:"name"`
	Flag        string `json:"flag"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// groupOf returns the group of a parameter.
func groupOf(name string) string {
	for _, field := range onionoo.FieldParameters() {
		if field == name {
			return "fields"
		}
	}
	for _, pagination := range onionoo.PaginationParameters() {
		if pagination == name {
			return "pagination"
		}
	}
	return "selection"
}

// Catalog returns information about all the query parameters.
func Catalog() []Info {
	var out []Info
	for _, name := range onionoo.ParameterNames() {
		description, _ := onionoo.ParameterDescription(name)
		out = append(out, Info{
			Name:        name,
			Flag:        "--" + query.FlagName(name),
			Group:       groupOf(name),
			Description: description,
		})
	}
	return out
}

// Print writes the catalog to w.
func Print(w io.Writer, catalog []Info) error {
	for _, info := range catalog {
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n%s\n\n",
			util.RightPad(color.New(color.Bold).Sprint(info.Name), 22),
			color.CyanString(info.Flag), info.Group,
			util.Indent(info.Description, 72, "    ")); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the query parameters",
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
