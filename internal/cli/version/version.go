package version

import (
	"fmt"

	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Version)
			return err
		},
	}
	root.Cmd.AddCommand(cmd)
}
