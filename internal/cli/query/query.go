// Package query binds the Onionoo query parameters to command line flags.
package query

import (
	"strings"

	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Flags contains the query flags of a command.
type Flags struct {
	values map[string]*string
	params []string
}

// FlagName returns the flag name of the given parameter (e.g., first-seen-days).
func FlagName(param string) string {
	return strings.ReplaceAll(param, "_", "-")
}

// Register adds one flag per query parameter and the repeatable --param flag.
func Register(cmd *cobra.Command) *Flags {
	f := &Flags{values: make(map[string]*string)}
	flags := cmd.Flags()
	for _, name := range onionoo.ParameterNames() {
		f.values[name] = flags.String(FlagName(name), "", usage(name))
	}
	flags.StringArrayVar(&f.params, "param", nil, "Set a query parameter using name=value (repeatable)")
	return f
}

// usage returns the first sentence of the parameter description.
func usage(name string) string {
	description, _ := onionoo.ParameterDescription(name)
	if idx := strings.Index(description, ". "); idx >= 0 {
		description = description[:idx+1]
	}
	return description
}

// Parameters returns the parameters set by the user, starting from base.
func (f *Flags) Parameters(cmd *cobra.Command, base onionoo.QueryParameters) (onionoo.QueryParameters, error) {
	params := base
	flags := cmd.Flags()
	for _, name := range onionoo.ParameterNames() {
		if !flags.Changed(FlagName(name)) {
			continue
		}
		var err error
		if params, err = params.Set(name, *f.values[name]); err != nil {
			return params, errors.Wrapf(err, "--%s", FlagName(name))
		}
	}
	for _, entry := range f.params {
		name, value, found := strings.Cut(entry, "=")
		if !found {
			return params, errors.Errorf("--param %q: expected name=value", entry)
		}
		var err error
		if params, err = params.Set(strings.TrimSpace(name), value); err != nil {
			return params, errors.Wrapf(err, "--param %q", entry)
		}
	}
	return params, nil
}

// Endpoint parses the name of an endpoint given on the command line.
func Endpoint(name string) (onionoo.Endpoint, error) {
	endpoint, found := onionoo.FindByName(name)
	if !found {
		var names []string
		for _, e := range onionoo.AllEndpoints() {
			names = append(names, e.Name())
		}
		return endpoint, errors.Errorf("unknown endpoint %q (expected one of: %s)", name, strings.Join(names, ", "))
	}
	return endpoint, nil
}

// EndpointNames completes the names of the endpoints.
func EndpointNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, e := range onionoo.AllEndpoints() {
		names = append(names, e.Name())
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
