package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghstats/internal/usecase"
)

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch owner/name [owner/name...]",
		Short: "Fetches repository statistics and outputs them as JSON",
		Long: `Fetches watchers, stars, forks, open issues and open pull requests of each
repository in the given order. The whole batch fails if any repository fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.resolveToken(nil)
			if err != nil {
				return err
			}
			logger := opts.newLogger(cmd.ErrOrStderr())
			githubGateway, err := opts.newGateway(token, logger)
			if err != nil {
				return err
			}

			repos, err := usecase.NewTracker(githubGateway, logger).FetchAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), repos)
		},
	}
}
