package cmd

import (
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghstats/internal/domain"
)

func newReleasesCmd(opts *options) *cobra.Command {
	var newestFirst bool

	releasesCmd := &cobra.Command{
		Use:   "releases owner/name",
		Short: "Fetches the releases of a repository with their asset download counts",
		Long: `Fetches the releases of a repository and outputs them as JSON in the order
returned by the API. Use --newest-first for the order shown by the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseRepoID(args[0])
			if err != nil {
				return err
			}
			token, err := opts.resolveToken(nil)
			if err != nil {
				return err
			}
			logger := opts.newLogger(cmd.ErrOrStderr())
			githubGateway, err := opts.newGateway(token, logger)
			if err != nil {
				return err
			}

			repo, err := githubGateway.FetchRepo(cmd.Context(), id)
			if err != nil {
				return err
			}
			releases, err := githubGateway.FetchReleases(cmd.Context(), repo)
			if err != nil {
				return err
			}
			if newestFirst {
				releases = domain.ReverseReleases(releases)
			}
			return printJSON(cmd.OutOrStdout(), releases)
		},
	}
	releasesCmd.Flags().BoolVar(&newestFirst, "newest-first", false, "Reverse the API order")
	return releasesCmd
}
