package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghstats/internal/tui"
	"github.com/naka-gawa/ghstats/internal/usecase"
)

// runTUI starts the interactive view. The terminal belongs to the view, so logs go to a file.
func runTUI(cmd *cobra.Command, opts *options, args []string) error {
	token, err := opts.resolveToken(args)
	if err != nil {
		return err
	}

	out, closeLog, err := openLogOutput(opts)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := opts.newLogger(out)

	githubGateway, err := opts.newGateway(token, logger)
	if err != nil {
		return err
	}
	tracker := usecase.NewTracker(githubGateway, logger)

	logger.Info("Starting interactive view", "endpoint", opts.resolveEndpoint())
	program := tea.NewProgram(
		tui.New(cmd.Context(), tracker, logger),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive view failed: %w", err)
	}
	return nil
}

// openLogOutput returns the log destination of the view. Anything written to
// stderr would tear the alternate screen, so logs are dropped unless verbose.
func openLogOutput(opts *options) (io.Writer, func() error, error) {
	if !opts.verbose {
		return io.Discard, func() error { return nil }, nil
	}
	logFile := opts.logFile
	if logFile == "" && opts.conf != nil {
		logFile = opts.conf.LogFile
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f.Close, nil
}
