// Package execshell implements the Executor abstraction: running a single
// script string in a given directory and capturing its exit status and
// output.
package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	mendErrors "github.com/craftvscruft/mend/internal/errors"
)

// Result is the outcome of a successfully spawned script.
type Result struct {
	ExitStatus int
	Stdout     []byte
	Stderr     []byte
}

// Executor runs a single script string in cwd and returns its outcome. A
// non-nil error means the executor itself could not run the script (e.g.
// the shell could not be spawned) — distinct from the script running and
// exiting non-zero, which is reported via Result.ExitStatus.
type Executor interface {
	RunScript(ctx context.Context, cwd, script string) (Result, error)
}

// ShellExecutor runs scripts via a POSIX-compatible shell: sh -c <script>.
type ShellExecutor struct{}

// New returns a ShellExecutor.
func New() *ShellExecutor {
	return &ShellExecutor{}
}

// RunScript spawns "sh -c script" in cwd, capturing stdout and stderr
// separately.
func (e *ShellExecutor) RunScript(ctx context.Context, cwd, script string) (Result, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", script) //#nosec G204 -- script is the mend plan's own declarative content, not external user input
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				ExitStatus: exitErr.ExitCode(),
				Stdout:     stdout.Bytes(),
				Stderr:     stderr.Bytes(),
			}, nil
		}
		return Result{}, fmt.Errorf("%w: %w", mendErrors.ErrExecutor, err)
	}

	return Result{ExitStatus: 0, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}
