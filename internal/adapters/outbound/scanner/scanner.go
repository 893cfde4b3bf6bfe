package scanner

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cifix/cifix/internal/domain"
)

// LogScanner implements domain.LogScanner by walking the filesystem.
//
// It applies the skip-unreadable-logs policy: files (and subdirectories)
// that cannot be read are recorded in LogCorpus.Skipped and otherwise
// ignored. A missing logs directory yields an empty corpus.
type LogScanner struct{}

func New() *LogScanner {
	return &LogScanner{}
}

func (s *LogScanner) Scan(logsDir, glob string) (*domain.LogCorpus, error) {
	if glob == "" {
		glob = domain.DefaultLogGlob
	}
	if _, err := filepath.Match(glob, ""); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(logsDir)
	if err != nil {
		return nil, err
	}

	corpus := &domain.LogCorpus{Root: absPath}

	info, err := os.Stat(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return corpus, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return corpus, nil
	}

	err = filepath.WalkDir(absPath, func(path string, d fs.DirEntry, err error) error {
		relPath, _ := filepath.Rel(absPath, path)
		if err != nil {
			if path == absPath {
				return err
			}
			corpus.Skip(relPath)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(glob, d.Name()); !ok {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			corpus.Skip(relPath)
			return nil
		}
		corpus.Add(relPath, string(data))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return corpus, nil
}
