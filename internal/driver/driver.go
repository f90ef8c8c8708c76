// Package driver implements the top-level orchestration of a mend run:
// given a loaded plan, provision the worktree, export environment bindings,
// plan all steps, and iterate them to completion or first failure.
package driver

import (
	"context"

	"github.com/craftvscruft/mend/internal/envexpand"
	mendErrors "github.com/craftvscruft/mend/internal/errors"
	"github.com/craftvscruft/mend/internal/execshell"
	"github.com/craftvscruft/mend/internal/notify"
	"github.com/craftvscruft/mend/internal/plan"
	"github.com/craftvscruft/mend/internal/repo"
	"github.com/craftvscruft/mend/internal/stepexec"
)

// WorktreeProvisioner creates (or recreates) an isolated working tree of a
// base repository at a revision, returning its path. Satisfied by
// internal/worktree.Provision.
type WorktreeProvisioner func(ctx context.Context, baseRepoDir, revision string) (string, error)

// EnvSetter sets a process-wide environment variable. Satisfied by
// os.Setenv; overridable in tests so a run never mutates the test process.
type EnvSetter func(key, value string) error

// Options configures a Run.
type Options struct {
	Provision WorktreeProvisioner
	NewRepo   func(dir string) repo.Repo
	Executor  execshell.Executor
	Notifier  notify.Notifier
	SetEnv    EnvSetter
}

// Run drives p to completion or first failure. It returns ErrNoOrigin when
// p.HasOrigin is false, ErrWorktree (wrapped) when repo_path cannot be
// expanded or an env binding cannot be exported, the provisioner's error
// unchanged, and ErrPipelineFailed when a step fails.
func Run(ctx context.Context, p *plan.Plan, opts Options) error {
	if !p.HasOrigin {
		return mendErrors.ErrNoOrigin
	}

	baseRepoDir, err := envexpand.Path(p.Origin.RepoPath)
	if err != nil {
		return mendErrors.Wrapf(mendErrors.ErrWorktree, err, "could not expand repo_path %q", p.Origin.RepoPath)
	}

	worktreeDir, err := opts.Provision(ctx, baseRepoDir, p.Origin.Revision)
	if err != nil {
		return err
	}

	for _, key := range p.Env.Keys() {
		value, _ := p.Env.Get(key)
		if err := opts.SetEnv(key, envexpand.Value(value)); err != nil {
			return mendErrors.Wrapf(mendErrors.ErrWorktree, err, "could not export env binding %q", key)
		}
	}

	requests := plan.PlanSteps(p)

	r := opts.NewRepo(worktreeDir)

	for index, request := range requests {
		response := plan.NewStepResponse()
		stepexec.Execute(ctx, r, opts.Executor, opts.Notifier, index, request, response)

		if response.Status == plan.StatusFailed {
			opts.Notifier.NotifyFailure(request, response)
			opts.Notifier.NotifyDone()
			return mendErrors.ErrPipelineFailed
		}
	}

	opts.Notifier.NotifyDone()
	return nil
}
