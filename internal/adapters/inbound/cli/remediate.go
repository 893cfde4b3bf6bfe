package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cifix/cifix/internal/adapters/outbound/config"
	"github.com/cifix/cifix/internal/adapters/outbound/gitinfo"
	"github.com/cifix/cifix/internal/adapters/outbound/metrics"
	"github.com/cifix/cifix/internal/adapters/outbound/scanner"
	"github.com/cifix/cifix/internal/adapters/outbound/tui"
	"github.com/cifix/cifix/internal/adapters/outbound/workspace"
	"github.com/cifix/cifix/internal/application"
	"github.com/cifix/cifix/internal/domain"
	"github.com/cifix/cifix/internal/domain/rules"
)

type remediateOptions struct {
	repo        string
	dryRun      bool
	noCommit    bool
	jsonOutput  bool
	metricsFile string
	logLevel    string
}

func runRemediate(cmd *cobra.Command, logsDir string, opts remediateOptions) error {
	logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return err
	}

	repoRoot, err := filepath.Abs(opts.repo)
	if err != nil {
		return fmt.Errorf("resolving repo: %w", err)
	}

	var loader domain.ConfigLoader = config.New()
	cfg, err := loader.Load(repoRoot)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	svc := application.NewRemediateService(
		scanner.New(),
		workspace.New(),
		gitinfo.New(),
		rules.Default(),
		logger,
	).WithCheck(domain.TargetWorkflow, workspace.CheckWorkflow)

	report, err := svc.Remediate(cmd.Context(), repoRoot, logsDir, cfg, domain.RemediateOptions{
		DryRun:   opts.dryRun,
		NoCommit: opts.noCommit,
	})
	if err != nil {
		return fmt.Errorf("remediation failed: %w", err)
	}

	if opts.metricsFile != "" {
		rec := metrics.New()
		rec.Record(report)
		if err := rec.WriteTextfile(opts.metricsFile); err != nil {
			logger.Warn().Err(err).Str("path", opts.metricsFile).Msg("writing metrics")
		}
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
	return nil
}

func newLogger(w io.Writer, level string) (*zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	logger := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return &logger, nil
}
