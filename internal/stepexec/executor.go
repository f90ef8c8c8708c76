// Package stepexec implements the per-step execution state machine: run a
// StepRequest's scripts against a Repo, commit or reset, and emit progress
// events via a Notifier.
package stepexec

import (
	"context"
	"fmt"

	"github.com/craftvscruft/mend/internal/execshell"
	"github.com/craftvscruft/mend/internal/notify"
	"github.com/craftvscruft/mend/internal/plan"
	"github.com/craftvscruft/mend/internal/repo"
)

// Execute runs one step to completion, mutating response in place and
// emitting progress events via notifier. It never returns an error: all
// failures are captured into response.Status and response.Output.
func Execute(
	ctx context.Context,
	r repo.Repo,
	executor execshell.Executor,
	notifier notify.Notifier,
	index int,
	request plan.StepRequest,
	response *plan.StepResponse,
) {
	response.Status = plan.StatusRunning
	notify1(notifier, index, request, response, false)

	for _, script := range request.Scripts {
		notify1(notifier, index, request, response, true)
		response.AppendOutput(fmt.Sprintf("Running\n%s\n", script))

		result, err := executor.RunScript(ctx, r.Dir(), script)
		if err != nil {
			response.AppendOutput(fmt.Sprintf("Failed to run\n%v\n", err))
			response.Status = plan.StatusFailed
			notify1(notifier, index, request, response, false)
			break
		}

		response.AppendOutput(string(result.Stdout))
		response.AppendOutput(string(result.Stderr))
		if result.ExitStatus != 0 {
			response.Status = plan.StatusFailed
			notify1(notifier, index, request, response, false)
			break
		}
	}

	if response.Status != plan.StatusFailed {
		commit(ctx, r, request, response)
		notify1(notifier, index, request, response, true)
		return
	}

	_ = r.ResetHard(ctx)
	notify1(notifier, index, request, response, false)
}

func commit(ctx context.Context, r repo.Repo, request plan.StepRequest, response *plan.StepResponse) {
	response.Status = plan.StatusDone
	response.AppendOutput(fmt.Sprintf("Committing with message '%s'", request.CommitMsg))

	if err := r.CommitAll(ctx, request.CommitMsg); err != nil {
		response.AppendOutput(err.Error())
		response.Status = plan.StatusFailed
		return
	}

	if sha, err := r.CurrentShortSHA(ctx); err == nil {
		response.SetRevision(sha)
	}
}

// notify1 is a thin wrapper translating the step response's optional
// revision into the Notifier's (revision, hasRevision) pair.
func notify1(notifier notify.Notifier, index int, request plan.StepRequest, response *plan.StepResponse, advance bool) {
	notifier.Notify(index, request.Run, response.Status, response.Revision, response.HasRevision, advance)
}
