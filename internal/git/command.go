// Package git provides the low-level git command runner used by the Repo
// and worktree provisioner.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	mendErrors "github.com/craftvscruft/mend/internal/errors"
)

// RunCommand executes a git command in the specified directory and returns its output.
// If ctx is canceled or past its deadline, ctx.Err() is returned as is; all
// other errors are wrapped with ErrGitOperation and include stderr for debugging.
// This function is exported for use by other packages (e.g., repo and worktree).
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check for context cancellation
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Include stderr in error for debugging, wrap with ErrGitOperation
		if stderr.Len() > 0 {
			return "", mendErrors.Wrapf(mendErrors.ErrGitOperation, err, "git %s failed: %s", args[0], strings.TrimSpace(stderr.String()))
		}
		return "", mendErrors.Wrapf(mendErrors.ErrGitOperation, err, "git %s failed", args[0])
	}

	return strings.TrimSpace(stdout.String()), nil
}
