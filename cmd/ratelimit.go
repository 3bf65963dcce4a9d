package cmd

import (
	"github.com/spf13/cobra"
)

func newRateLimitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ratelimit",
		Short: "Shows the remaining GraphQL rate limit of the token",
		Args:  cobra.NoArgs,
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

			limit, err := githubGateway.FetchRateLimit(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), limit)
		},
	}
}
