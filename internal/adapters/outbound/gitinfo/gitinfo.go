package gitinfo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/cifix/cifix/internal/domain"
)

// Committer implements domain.Committer using go-git.
type Committer struct {
	now func() time.Time
}

func New() *Committer {
	return &Committer{now: time.Now}
}

// Commit writes the bot identity into the repository config, stages paths
// (relative to repoRoot) and commits them. Paths that cannot be staged are
// skipped; the returned error joins every failure.
func (c *Committer) Commit(ctx context.Context, repoRoot string, paths []string, commit domain.CommitConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	repo, err := git.PlainOpenWithOptions(repoRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	var errs []error

	cfg, err := repo.Config()
	if err == nil {
		cfg.User.Name = commit.AuthorName
		cfg.User.Email = commit.AuthorEmail
		err = repo.SetConfig(cfg)
	}
	if err != nil {
		errs = append(errs, fmt.Errorf("setting identity: %w", err))
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}

	for _, p := range paths {
		rel, err := worktreePath(wt.Filesystem.Root(), repoRoot, p)
		if err == nil {
			_, err = wt.Add(rel)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("staging %s: %w", p, err))
		}
	}

	if err := ctx.Err(); err != nil {
		return "", errors.Join(append(errs, err)...)
	}

	sig := &object.Signature{
		Name:  commit.AuthorName,
		Email: commit.AuthorEmail,
		When:  c.now(),
	}
	hash, err := wt.Commit(commit.Message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		errs = append(errs, fmt.Errorf("committing: %w", err))
		return "", errors.Join(errs...)
	}

	return hash.String(), errors.Join(errs...)
}

// worktreePath maps a path relative to repoRoot onto the worktree root, which
// may be a parent of repoRoot.
func worktreePath(wtRoot, repoRoot, relPath string) (string, error) {
	absRepo, err := filepath.Abs(repoRoot)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absRepo); err == nil {
		absRepo = resolved
	}
	if resolved, err := filepath.EvalSymlinks(wtRoot); err == nil {
		wtRoot = resolved
	}

	rel, err := filepath.Rel(wtRoot, filepath.Join(absRepo, filepath.FromSlash(relPath)))
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
