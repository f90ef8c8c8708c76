// Package worktree provisions an isolated git worktree of a base repository
// at a fixed, reusable sub-path.
package worktree

import (
	"context"
	"os"
	"path/filepath"

	mendErrors "github.com/craftvscruft/mend/internal/errors"
	"github.com/craftvscruft/mend/internal/git"
)

// RelPath is the fixed sub-path, relative to the base repository, at which
// the worktree is always (re)created.
const RelPath = ".mend/worktree2"

// Provision creates (or recreates) an isolated working tree of the
// repository at baseRepoDir, checked out at revision, rooted at RelPath. If
// a worktree already exists at that path it is force-removed first. Returns
// the path to the provisioned worktree: baseRepoDir joined with RelPath.
func Provision(ctx context.Context, baseRepoDir, revision string) (string, error) {
	worktreeDir := filepath.Join(baseRepoDir, RelPath)

	if _, err := os.Stat(worktreeDir); err == nil {
		if _, rmErr := git.RunCommand(ctx, baseRepoDir, "worktree", "remove", "--force", RelPath); rmErr != nil {
			return "", mendErrors.Wrapf(mendErrors.ErrWorktree, rmErr, "could not remove existing worktree at %q", worktreeDir)
		}
	}

	if _, err := git.RunCommand(ctx, baseRepoDir, "worktree", "add", "--force", worktreeDir, revision); err != nil {
		return "", mendErrors.Wrapf(mendErrors.ErrWorktree, err, "could not add worktree at %q for revision %q", worktreeDir, revision)
	}

	return worktreeDir, nil
}
