// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghstats/internal/config"
	"github.com/naka-gawa/ghstats/internal/gateway"
)

var errMissingToken = errors.New("<GITHUB_TOKEN> missing - usage: ghstats <GITHUB_TOKEN>")

// options holds the persistent flags and the configuration shared by all commands.
type options struct {
	verbose  bool
	token    string
	endpoint string
	logFile  string
	conf     *config.Config
}

// resolveToken picks the token from --token, then the positional argument, then GITHUB_TOKEN.
func (o *options) resolveToken(args []string) (string, error) {
	switch {
	case o.token != "":
		return o.token, nil
	case len(args) > 0 && args[0] != "":
		return args[0], nil
	case o.conf != nil && o.conf.Token != "":
		return o.conf.Token, nil
	}
	return "", errMissingToken
}

func (o *options) resolveEndpoint() string {
	if o.endpoint != "" {
		return o.endpoint
	}
	if o.conf != nil {
		return o.conf.Endpoint
	}
	return gateway.DefaultEndpoint
}

// newLogger returns a logger writing to w, or one that discards everything unless verbose is set.
func (o *options) newLogger(w io.Writer) *log.Logger {
	if !o.verbose {
		w = io.Discard
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.DebugLevel,
	})
}

func (o *options) newGateway(token string, logger *log.Logger) (*gateway.GitHubGateway, error) {
	gw, err := gateway.NewGitHubGateway(token, o.resolveEndpoint(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return gw, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ghstats <GITHUB_TOKEN>",
		Short: "Track GitHub repository statistics and release downloads.",
		Long: `ghstats tracks watchers, stars, forks, open issues and pull requests of
GitHub repositories together with the download counts of their releases.

Run without a subcommand to open the interactive two-pane view.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(".env")
			if err != nil {
				return err
			}
			opts.conf = conf
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, args)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", "", "GitHub token (defaults to the positional argument or GITHUB_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "GraphQL endpoint (defaults to GHSTATS_ENDPOINT or the public GitHub API)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Log destination while the interactive view is running (defaults to GHSTATS_LOG_FILE)")

	rootCmd.AddCommand(newFetchCmd(opts))
	rootCmd.AddCommand(newReleasesCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newRateLimitCmd(opts))
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
