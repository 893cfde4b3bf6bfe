package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileStore implements domain.TargetStore over whole files on disk.
type FileStore struct{}

func New() *FileStore {
	return &FileStore{}
}

func (s *FileStore) Read(repoRoot, relPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(repoRoot, filepath.FromSlash(relPath)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces the file, keeping the permissions of an existing file.
func (s *FileStore) Write(repoRoot, relPath, content string) error {
	fp := filepath.Join(repoRoot, filepath.FromSlash(relPath))

	perm := fs.FileMode(0644)
	if info, err := os.Stat(fp); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}
	return os.WriteFile(fp, []byte(content), perm)
}

// CheckWorkflow reports whether content still parses as a YAML document with
// a top-level jobs mapping.
func CheckWorkflow(content string) error {
	var doc struct {
		Jobs map[string]yaml.Node `yaml:"jobs"`
	}
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		return fmt.Errorf("parsing workflow: %w", err)
	}
	if len(doc.Jobs) == 0 {
		return fmt.Errorf("workflow has no jobs")
	}
	return nil
}
