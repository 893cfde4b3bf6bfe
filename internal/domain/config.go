package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Default target paths and commit identity, relative to the repository root.
const (
	DefaultWorkflowPath  = ".github/workflows/android-build.yml"
	DefaultBuildFilePath = "app/build.gradle.kts"
	DefaultLogGlob       = "*.txt"
	DefaultAuthorName    = "ai-fix-bot"
	DefaultAuthorEmail   = "ai-fix-bot@users.noreply.github.com"
	DefaultCommitMessage = "ci(ai-fix): apply automated fixes"
)

// Config holds repository-level configuration loaded from .cifix.yaml.
type Config struct {
	WorkflowPath  string       `yaml:"workflow_path"   json:"workflow_path"`
	BuildFilePath string       `yaml:"build_file_path" json:"build_file_path"`
	LogGlob       string       `yaml:"log_glob"        json:"log_glob"`
	Commit        CommitConfig `yaml:"commit"          json:"commit"`
}

// CommitConfig is the identity and message used for the remediation commit.
type CommitConfig struct {
	AuthorName  string `yaml:"author_name"  json:"author_name"`
	AuthorEmail string `yaml:"author_email" json:"author_email"`
	Message     string `yaml:"message"      json:"message"`
}

func DefaultConfig() Config {
	return Config{
		WorkflowPath:  DefaultWorkflowPath,
		BuildFilePath: DefaultBuildFilePath,
		LogGlob:       DefaultLogGlob,
		Commit: CommitConfig{
			AuthorName:  DefaultAuthorName,
			AuthorEmail: DefaultAuthorEmail,
			Message:     DefaultCommitMessage,
		},
	}
}

// PathFor resolves a target kind to its repository-relative path.
func (c Config) PathFor(kind TargetKind) (string, error) {
	switch kind {
	case TargetWorkflow:
		return c.WorkflowPath, nil
	case TargetBuildFile:
		return c.BuildFilePath, nil
	default:
		return "", fmt.Errorf("unknown target %q", kind)
	}
}

// TargetPaths returns every target path in a stable order.
func (c Config) TargetPaths() []string {
	return []string{c.WorkflowPath, c.BuildFilePath}
}

// Validate checks a fully merged config. Zero values are rejected, so callers
// merge over DefaultConfig first.
func (c Config) Validate() error {
	for _, p := range []struct{ field, value string }{
		{"workflow_path", c.WorkflowPath},
		{"build_file_path", c.BuildFilePath},
	} {
		if err := validateRelPath(p.field, p.value); err != nil {
			return err
		}
	}
	if c.WorkflowPath == c.BuildFilePath {
		return fmt.Errorf("workflow_path and build_file_path must differ (both %q)", c.WorkflowPath)
	}

	if c.LogGlob == "" {
		return fmt.Errorf("log_glob must not be empty")
	}
	if _, err := filepath.Match(c.LogGlob, ""); err != nil {
		return fmt.Errorf("invalid log_glob %q: %w", c.LogGlob, err)
	}

	if strings.TrimSpace(c.Commit.AuthorName) == "" {
		return fmt.Errorf("commit.author_name must not be empty")
	}
	if !strings.Contains(c.Commit.AuthorEmail, "@") {
		return fmt.Errorf("commit.author_email %q is not an email address", c.Commit.AuthorEmail)
	}
	if strings.TrimSpace(c.Commit.Message) == "" {
		return fmt.Errorf("commit.message must not be empty")
	}

	return nil
}

func validateRelPath(field, p string) error {
	if p == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") {
		return fmt.Errorf("%s %q must be relative to the repository root", field, p)
	}
	clean := path.Clean(filepath.ToSlash(p))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("%s %q escapes the repository root", field, p)
	}
	return nil
}
