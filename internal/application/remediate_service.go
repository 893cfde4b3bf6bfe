package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cifix/cifix/internal/domain"
)

// RemediateService orchestrates a remediation run:
// scan logs → evaluate every rule → write changed targets → commit.
type RemediateService struct {
	scanner   domain.LogScanner
	store     domain.TargetStore
	committer domain.Committer
	rules     []domain.FixRule
	checks    map[domain.TargetKind]func(string) error
	log       *zerolog.Logger
	now       func() time.Time
}

func NewRemediateService(
	sc domain.LogScanner,
	store domain.TargetStore,
	committer domain.Committer,
	rules []domain.FixRule,
	logger *zerolog.Logger,
) *RemediateService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &RemediateService{
		scanner:   sc,
		store:     store,
		committer: committer,
		rules:     rules,
		checks:    map[domain.TargetKind]func(string) error{},
		log:       logger,
		now:       time.Now,
	}
}

// WithCheck registers a post-transform sanity check for a target kind. A
// failing check is logged and does not block the write.
func (s *RemediateService) WithCheck(kind domain.TargetKind, check func(string) error) *RemediateService {
	s.checks[kind] = check
	return s
}

// pendingTarget is a target read during the run, with its rewritten text.
type pendingTarget struct {
	path     string
	kind     domain.TargetKind
	original string
	current  string
}

// Remediate runs every rule against the corpus built from logsDir. Target
// writes are staged until all rules have been evaluated, so a failing rule
// leaves every file untouched. Version-control failures are logged and
// reported as Committed=false, never returned.
func (s *RemediateService) Remediate(ctx context.Context, repoRoot, logsDir string, cfg domain.Config, opts domain.RemediateOptions) (*domain.RemediationReport, error) {
	if logsDir == "" {
		return nil, domain.ErrUsage
	}

	corpus, err := s.scanner.Scan(logsDir, cfg.LogGlob)
	if err != nil {
		return nil, fmt.Errorf("scanning logs: %w", err)
	}
	for _, p := range corpus.Skipped {
		s.log.Debug().Str("file", p).Msg("skipping unreadable log")
	}
	s.log.Debug().Int("files", len(corpus.Files)).Str("dir", corpus.Root).Msg("scanned logs")

	report := &domain.RemediationReport{
		LogsDir:     logsDir,
		LogFiles:    len(corpus.Files),
		SkippedLogs: len(corpus.Skipped),
		DryRun:      opts.DryRun,
		Timestamp:   s.now(),
	}

	text := corpus.Text()
	pending := map[string]*pendingTarget{}
	var order []string

	for _, rule := range s.rules {
		path, err := cfg.PathFor(rule.Target())
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
		}
		outcome := domain.RuleOutcome{ID: rule.ID(), Target: rule.Target(), Path: path}

		if rule.Matches(text) {
			outcome.Triggered = true

			t, ok := pending[path]
			if !ok {
				content, err := s.store.Read(repoRoot, path)
				if err != nil {
					return nil, fmt.Errorf("rule %s: %w: %s: %w", rule.ID(), domain.ErrTargetUnreadable, path, err)
				}
				t = &pendingTarget{path: path, kind: rule.Target(), original: content, current: content}
				pending[path] = t
				order = append(order, path)
			}

			next := rule.Apply(t.current)
			outcome.Changed = next != t.current
			t.current = next

			s.log.Info().Str("rule", rule.ID()).Str("target", path).Bool("changed", outcome.Changed).Msg("fingerprint found")
		}

		report.Rules = append(report.Rules, outcome)
		report.Changed = report.Changed || outcome.Changed
	}

	if !report.Changed || opts.DryRun {
		return report, nil
	}

	for _, path := range order {
		t := pending[path]
		if t.current == t.original {
			continue
		}
		if check, ok := s.checks[t.kind]; ok {
			if err := check(t.current); err != nil {
				s.log.Warn().Err(err).Str("target", path).Msg("patched target failed sanity check")
			}
		}
		if err := s.store.Write(repoRoot, path, t.current); err != nil {
			return report, fmt.Errorf("writing %s: %w", path, err)
		}
		report.Written = append(report.Written, path)
	}

	if opts.NoCommit {
		return report, nil
	}

	hash, err := s.committer.Commit(ctx, repoRoot, cfg.TargetPaths(), cfg.Commit)
	if err != nil {
		// Best effort: the fixes are on disk either way.
		s.log.Warn().Err(err).Msg("version control step failed")
	}
	if hash != "" {
		report.Committed = true
		report.CommitHash = hash
		s.log.Info().Str("commit", hash).Msg("committed fixes")
	}

	return report, nil
}
