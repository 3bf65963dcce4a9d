package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghstats/internal/store"
	"github.com/naka-gawa/ghstats/internal/usecase"
)

func newReportCmd(opts *options) *cobra.Command {
	var databaseURL, table string

	reportCmd := &cobra.Command{
		Use:   "report [name...]",
		Short: "Summarizes the recorded statistics history as JSON",
		Long: `Reads the snapshot history from PostgreSQL and summarizes it per repository:
latest values, stars and downloads gained, mean and median change per scrape.
Without names every tracked repository is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = opts.conf.DatabaseURL
			}
			if databaseURL == "" {
				return errors.New("no database configured: set --database-url or GHSTATS_DATABASE_URL")
			}
			if table == "" {
				table = opts.conf.SnapshotTable
			}
			logger := opts.newLogger(cmd.ErrOrStderr())

			snapshots, err := store.Open(cmd.Context(), databaseURL, table)
			if err != nil {
				return err
			}
			defer snapshots.Close()

			reporter := usecase.NewReporter(snapshots, logger, opts.conf.ReportConcurrency)
			summaries, err := reporter.Report(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), summaries)
		},
	}
	reportCmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL DSN (defaults to GHSTATS_DATABASE_URL)")
	reportCmd.Flags().StringVar(&table, "table", "", "Snapshot relation (defaults to GHSTATS_SNAPSHOT_TABLE)")
	return reportCmd
}
