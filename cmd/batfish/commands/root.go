package commands

import (
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo carries the values stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// persistent flag name -> viper key
var flagKeys = map[string]string{
	"api":             "api",
	"token":           "token",
	"token-file":      "token_file",
	"output":          "output",
	"verbose":         "verbose",
	"debug":           "debug",
	"no-color":        "no_color",
	"user-agent":      "user_agent",
	"timeout":         "timeout",
	"connect-timeout": "connect_timeout",
	"retry-max":       "retry_max",
	"nats-url":        "nats_url",
	"nats-subject":    "nats_subject",
}

// NewRootCommand builds the full command tree. The shell builds a fresh tree
// for every line it reads, so nothing here may keep state between runs.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "batfish",
		Short: "DigitalOcean droplet CLI",
		Long: `A command-line interface for the DigitalOcean v2 API.

Manage droplets, images, regions, sizes and actions from the terminal or from
an interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.batfish.yml)")
	flags.StringP("api", "a", constants.DefaultAPIEndpoint, "API endpoint URL")
	flags.StringP("token", "t", "", "API token (default is the token stored by 'batfish authorize')")
	flags.String("token-file", "", "token file (default is $HOME/.batfish)")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.Bool("debug", false, "log HTTP requests and responses")
	flags.Bool("no-color", false, "disable colored log output")
	flags.String("user-agent", "", "override the User-Agent header")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "HTTP request timeout")
	flags.Duration("connect-timeout", constants.DefaultConnectTimeout, "HTTP connect timeout")
	flags.Int("retry-max", constants.DefaultRetryMax, "retries for idempotent requests")
	flags.String("nats-url", "", "publish audit events to this NATS server")
	flags.String("nats-subject", constants.DefaultEventSubject, "subject for audit events")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	for flag, key := range flagKeys {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(NewVersionCommand(info))
	rootCmd.AddCommand(NewAuthorizeCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewDropletsCommand())
	rootCmd.AddCommand(NewImagesCommand())
	rootCmd.AddCommand(NewRegionsCommand())
	rootCmd.AddCommand(NewSizesCommand())
	rootCmd.AddCommand(NewActionsCommand())
	rootCmd.AddCommand(NewShellCommand(func() *cobra.Command {
		return NewRootCommand(info)
	}))

	return rootCmd
}
