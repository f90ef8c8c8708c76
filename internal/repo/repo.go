// Package repo implements the Repo abstraction the core execution engine
// depends on: commit-all, reset-hard, current-short-revision, and
// working-directory, backed by the git command runner.
package repo

import (
	"context"

	mendErrors "github.com/craftvscruft/mend/internal/errors"
	"github.com/craftvscruft/mend/internal/git"
)

// Repo abstracts the repository operations the step executor needs. It is
// implemented by GitRepo in production and by an in-memory fake under test.
type Repo interface {
	// CommitAll stages all changes and records one revision with message.
	CommitAll(ctx context.Context, message string) error
	// ResetHard restores the working tree to the committed state.
	// Best-effort: callers must not treat a returned error as fatal.
	ResetHard(ctx context.Context) error
	// CurrentShortSHA returns a short revision identifier for the current tip.
	CurrentShortSHA(ctx context.Context) (string, error)
	// Dir returns the working directory scripts must execute in.
	Dir() string
}

// GitRepo is a Repo backed by a working directory under git's control.
type GitRepo struct {
	dir string
}

// New returns a GitRepo rooted at dir.
func New(dir string) *GitRepo {
	return &GitRepo{dir: dir}
}

// Dir returns the repo's working directory.
func (r *GitRepo) Dir() string {
	return r.dir
}

// CommitAll stages all changes (including untracked files) and commits them
// with message. If there is nothing to commit, git exits non-zero and this
// surfaces as ErrCommit.
func (r *GitRepo) CommitAll(ctx context.Context, message string) error {
	if _, err := git.RunCommand(ctx, r.dir, "add", "-A"); err != nil {
		return mendErrors.Wrap(mendErrors.ErrCommit, err)
	}
	if _, err := git.RunCommand(ctx, r.dir, "commit", "-m", message); err != nil {
		return mendErrors.Wrap(mendErrors.ErrCommit, err)
	}
	return nil
}

// ResetHard restores the working tree to HEAD, discarding local changes.
func (r *GitRepo) ResetHard(ctx context.Context) error {
	_, err := git.RunCommand(ctx, r.dir, "reset", "--hard")
	return err
}

// CurrentShortSHA returns the short SHA of HEAD.
func (r *GitRepo) CurrentShortSHA(ctx context.Context) (string, error) {
	return git.RunCommand(ctx, r.dir, "rev-parse", "--short", "HEAD")
}
