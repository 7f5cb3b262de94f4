// Package app wires the subcommands to the root command.
package app

import (
	"context"

	"github.com/ooni/onionoo/internal/cli/root"
	"github.com/ooni/onionoo/internal/version"

	// commands
	_ "github.com/ooni/onionoo/internal/cli/endpoints"
	_ "github.com/ooni/onionoo/internal/cli/fetch"
	_ "github.com/ooni/onionoo/internal/cli/geo"
	_ "github.com/ooni/onionoo/internal/cli/history"
	_ "github.com/ooni/onionoo/internal/cli/params"
	_ "github.com/ooni/onionoo/internal/cli/url"
	_ "github.com/ooni/onionoo/internal/cli/version"
)

// Run the app. This is the main app entry point
func Run(ctx context.Context, args []string) error {
	root.Cmd.Version = version.Version
	root.Cmd.SetArgs(args)
	return root.Cmd.ExecuteContext(ctx)
}
