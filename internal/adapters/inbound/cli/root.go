package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cifix/cifix/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

const usageLine = "usage: cifix <logs_dir>"

func newRootCmd() *cobra.Command {
	var opts remediateOptions

	cmd := &cobra.Command{
		Use:   "cifix <logs_dir>",
		Short: "Apply known fixes for CI failures found in build logs",
		Long: "cifix scans CI log files for known failure fingerprints, patches the workflow " +
			"and build files accordingly, and commits the result under a bot identity.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), usageLine)
				return domain.ErrUsage
			}
			return runRemediate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", ".", "Repository root holding the target files")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report fixes without writing or committing")
	cmd.Flags().BoolVar(&opts.noCommit, "no-commit", false, "Write fixes but skip the commit")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the run report as JSON")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil && !errors.Is(err, domain.ErrUsage) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
