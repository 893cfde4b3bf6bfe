package domain

import "context"

// LogScanner aggregates log files under a directory into a LogCorpus.
type LogScanner interface {
	Scan(logsDir, glob string) (*LogCorpus, error)
}

// TargetStore reads and writes whole target files relative to a repository root.
type TargetStore interface {
	Read(repoRoot, relPath string) (string, error)
	Write(repoRoot, relPath, content string) error
}

// Committer records changed targets in version control on a best-effort basis.
type Committer interface {
	Commit(ctx context.Context, repoRoot string, paths []string, commit CommitConfig) (hash string, err error)
}

// ConfigLoader loads repository configuration.
type ConfigLoader interface {
	Load(repoRoot string) (Config, error)
}
