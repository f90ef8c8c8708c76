// Package errors provides centralized error handling for mend.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization, one per entry in the error
// taxonomy of spec.md §7. All errors use lowercase descriptions per Go
// conventions and are meant to be checked with errors.Is().
var (
	// ErrPlanLoad indicates the plan file (or one of its includes) could not
	// be read or decoded, or violated a structural rule such as an include
	// file declaring steps.
	ErrPlanLoad = errors.New("plan load failed")

	// ErrNoOrigin indicates a plan has no origin revision/repo_path configured.
	ErrNoOrigin = errors.New("plan has no origin")

	// ErrWorktree indicates the worktree could not be removed or recreated.
	ErrWorktree = errors.New("worktree operation failed")

	// ErrScriptFailure indicates a step's script exited with a non-zero status.
	ErrScriptFailure = errors.New("script failed")

	// ErrExecutor indicates the executor itself could not run a script (e.g.
	// the shell could not be spawned), distinct from the script running and
	// exiting non-zero.
	ErrExecutor = errors.New("executor failed to run script")

	// ErrCommit indicates a git commit_all operation failed.
	ErrCommit = errors.New("commit failed")

	// ErrGitOperation indicates a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrNotifierBestEffort marks a notifier failure that must never abort
	// the pipeline; callers log it and continue.
	ErrNotifierBestEffort = errors.New("notifier failed")

	// ErrPipelineFailed indicates the driver halted because a step's status
	// was Failed.
	ErrPipelineFailed = errors.New("pipeline halted on step failure")

	// ErrRunAborted indicates the user declined the pre-run confirmation
	// prompt; no worktree was touched.
	ErrRunAborted = errors.New("run aborted by user")
)
