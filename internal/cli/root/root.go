package root

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/ooni/onionoo/config"
	"github.com/ooni/onionoo/internal/log/handlers/cli"
	"github.com/ooni/onionoo/internal/metrics"
	"github.com/ooni/onionoo/internal/model"
	"github.com/ooni/onionoo/internal/version"
	"github.com/ooni/onionoo/pkg/onionoo"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Cmd is the root command
var Cmd = &cobra.Command{
	Use:           "onionoo",
	Short:         "Query the Onionoo service about Tor relays and bridges",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Flags contains the global command line flags.
type Flags struct {
	ConfigPath string
	BaseURL    string
	Mirrors    []string
	UserAgent  string
	Timeout    time.Duration
	Verbose    bool
	JSON       bool

	// MetricsFile is where to write the request metrics on success.
	MetricsFile string
}

// Options contains the values of the global flags.
var Options Flags

// Context contains what subcommands need to run.
type Context struct {
	// Config is the merged configuration.
	Config *config.Config

	// Client is the Onionoo client.
	Client *onionoo.Client

	// JSON indicates that we should emit JSON rather than formatted text.
	JSON bool
}

// Close releases the resources held by the client. Subcommands that
// perform requests call it before returning.
func (ctx *Context) Close() {
	ctx.Client.CloseIdleConnections()
}

func init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&Options.ConfigPath, "config", "c", "", "Set a custom config file path")
	flags.StringVar(&Options.BaseURL, "base-url", "", "Base URL of the Onionoo instance")
	flags.StringArrayVar(&Options.Mirrors, "mirror", nil, "Base URL of an equivalent Onionoo instance (repeatable)")
	flags.StringVar(&Options.UserAgent, "user-agent", "", "User-Agent header to send")
	flags.DurationVar(&Options.Timeout, "timeout", 0, "Timeout of each request (e.g., 30s)")
	flags.BoolVarP(&Options.Verbose, "verbose", "v", false, "Enable verbose log output.")
	flags.BoolVar(&Options.JSON, "json", false, "Emit JSON instead of formatted text")
	flags.StringVar(&Options.MetricsFile, "metrics-file", "", "Write request metrics to this file (Prometheus text format)")

	Cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		handler := cli.New(cmd.ErrOrStderr())
		handler.Elapsed = Options.Verbose
		log.Log = &log.Logger{Level: log.InfoLevel, Handler: handler}
		if Options.Verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("onionoo version %s", version.Version)
		}
		return nil
	}

	Cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if Options.MetricsFile == "" {
			return nil
		}
		log.Debugf("Writing metrics to %s", Options.MetricsFile)
		return errors.Wrap(metrics.WriteToTextfile(Options.MetricsFile), "writing metrics")
	}
}

// Init reads the configuration, applies the command line flags, and
// returns a [*Context] for running a subcommand.
func Init() (*Context, error) {
	var (
		c   *config.Config
		err error
	)
	if Options.ConfigPath != "" {
		log.Debugf("Reading config file from %s", Options.ConfigPath)
		c, err = config.ReadConfig(Options.ConfigPath)
	} else {
		log.Debug("Reading default config file")
		c, err = config.ReadDefaultConfig()
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	flags := Cmd.PersistentFlags()
	if flags.Changed("base-url") {
		c.BaseURL = Options.BaseURL
	}
	if flags.Changed("mirror") {
		c.Mirrors = Options.Mirrors
	}
	if flags.Changed("user-agent") {
		c.UserAgent = Options.UserAgent
	}
	if flags.Changed("timeout") {
		c.TimeoutSeconds = int64(Options.Timeout / time.Second)
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating flags")
	}
	if c.Verbose && !Options.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	var httpClient model.HTTPClient = &http.Client{Timeout: timeout(c)}
	if Options.MetricsFile != "" {
		httpClient = &metrics.HTTPClient{Client: httpClient}
	}
	options := []onionoo.Option{
		onionoo.WithBaseURL(c.BaseURL),
		onionoo.WithMirrors(c.Mirrors...),
		onionoo.WithLogger(log.Log),
		onionoo.WithHTTPClient(httpClient),
	}
	if c.UserAgent != "" {
		options = append(options, onionoo.WithUserAgent(c.UserAgent))
	}

	ctx := &Context{
		Config: c,
		Client: onionoo.NewClient(options...),
		JSON:   Options.JSON,
	}
	return ctx, nil
}

// timeout returns the timeout from the flags, which are more precise than
// the configuration file, or from the configuration.
func timeout(c *config.Config) time.Duration {
	if Cmd.PersistentFlags().Changed("timeout") {
		return Options.Timeout
	}
	return c.Timeout()
}
