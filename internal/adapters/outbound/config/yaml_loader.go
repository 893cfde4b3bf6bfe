package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cifix/cifix/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".cifix.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .cifix.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .cifix.yaml from repoRoot.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(repoRoot string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(repoRoot, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var override domain.Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg := mergeConfig(domain.DefaultConfig(), override)
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}

// mergeConfig overlays explicit overrides on top of the defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if override.WorkflowPath != "" {
		result.WorkflowPath = override.WorkflowPath
	}
	if override.BuildFilePath != "" {
		result.BuildFilePath = override.BuildFilePath
	}
	if override.LogGlob != "" {
		result.LogGlob = override.LogGlob
	}

	if override.Commit.AuthorName != "" {
		result.Commit.AuthorName = override.Commit.AuthorName
	}
	if override.Commit.AuthorEmail != "" {
		result.Commit.AuthorEmail = override.Commit.AuthorEmail
	}
	if override.Commit.Message != "" {
		result.Commit.Message = override.Commit.Message
	}

	return result
}
