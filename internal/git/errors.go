// Package git provides the low-level git command runner used by the Repo
// and worktree provisioner.
// This file re-exports the git-related sentinel from internal/errors for
// callers that only need the git package's own surface.
package git

import mendErrors "github.com/craftvscruft/mend/internal/errors"

// ErrGitOperation is re-exported from internal/errors for convenience.
// Use errors.Is(err, ErrGitOperation) to check for git command failures.
var ErrGitOperation = mendErrors.ErrGitOperation
