package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrUsage is returned when the log directory argument is missing.
	ErrUsage = errors.New("missing logs directory argument")

	// ErrTargetUnreadable wraps failures to read a target file for a triggered rule.
	ErrTargetUnreadable = errors.New("target file unreadable")
)

// TargetKind identifies which of the fixed target files a rule rewrites.
type TargetKind string

const (
	TargetWorkflow  TargetKind = "workflow"
	TargetBuildFile TargetKind = "build_file"
)

// FixRule pairs a fingerprint detector over the log corpus with an
// idempotent transform over the current text of its target file.
type FixRule interface {
	ID() string
	Target() TargetKind
	Matches(corpus string) bool
	Apply(current string) string
}

// CorpusSeparator joins individual log files in a LogCorpus.
const CorpusSeparator = "\n\n"

// LogCorpus is the aggregated text of every log file found under a directory.
type LogCorpus struct {
	Root    string   `json:"root"`
	Files   []string `json:"files"`
	Skipped []string `json:"skipped,omitempty"`
	chunks  []string
}

// Add appends the contents of one log file.
func (c *LogCorpus) Add(relPath, text string) {
	c.Files = append(c.Files, relPath)
	c.chunks = append(c.chunks, text)
}

// Skip records a file dropped under the skip-unreadable-logs policy.
func (c *LogCorpus) Skip(relPath string) {
	c.Skipped = append(c.Skipped, relPath)
}

// Text returns the concatenation of all added files.
func (c *LogCorpus) Text() string {
	return strings.Join(c.chunks, CorpusSeparator)
}

// RuleOutcome records what a single rule did during a run.
type RuleOutcome struct {
	ID        string     `json:"id"`
	Target    TargetKind `json:"target"`
	Path      string     `json:"path"`
	Triggered bool       `json:"triggered"`
	Changed   bool       `json:"changed"`
}

// RemediationReport is the result of one remediation run.
type RemediationReport struct {
	LogsDir     string        `json:"logs_dir"`
	LogFiles    int           `json:"log_files"`
	SkippedLogs int           `json:"skipped_logs"`
	Rules       []RuleOutcome `json:"rules"`
	Changed     bool          `json:"changed"`
	Written     []string      `json:"written,omitempty"`
	Committed   bool          `json:"committed"`
	CommitHash  string        `json:"commit_hash,omitempty"`
	DryRun      bool          `json:"dry_run"`
	Timestamp   time.Time     `json:"timestamp"`
}

// Triggered returns the outcomes whose fingerprint was found.
func (r *RemediationReport) Triggered() []RuleOutcome {
	var out []RuleOutcome
	for _, o := range r.Rules {
		if o.Triggered {
			out = append(out, o)
		}
	}
	return out
}

// RemediateOptions controls side effects of a run.
type RemediateOptions struct {
	DryRun   bool `json:"dry_run"`
	NoCommit bool `json:"no_commit"`
}
