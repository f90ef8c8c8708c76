// Package cli provides the command-line interface for mend.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/craftvscruft/mend/internal/constants"
	"github.com/craftvscruft/mend/internal/driver"
	mendErrors "github.com/craftvscruft/mend/internal/errors"
	"github.com/craftvscruft/mend/internal/execshell"
	"github.com/craftvscruft/mend/internal/notify"
	"github.com/craftvscruft/mend/internal/notify/plain"
	"github.com/craftvscruft/mend/internal/notify/tui"
	"github.com/craftvscruft/mend/internal/plan"
	"github.com/craftvscruft/mend/internal/repo"
	"github.com/craftvscruft/mend/internal/worktree"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// newRootCmd creates and returns the root command for the mend CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mend",
		Short:   "mend applies a sequence of repo-mutating steps, committing after each one",
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := InitLogger(flags.Verbose, flags.Quiet).With().Str("run_id", newRunID()).Logger()

			p, err := plan.Load(flags.File)
			if err != nil {
				return err
			}

			if flags.DryRun {
				return runDryRun(cmd.OutOrStdout(), p)
			}

			if !flags.AssumeYes && isTerminal() {
				ok, err := confirmRun(p)
				if err != nil {
					return err
				}
				if !ok {
					return mendErrors.ErrRunAborted
				}
			}

			logger.Info().Str("origin", p.Origin.RepoPath).Msg("starting run")
			return runPipeline(cmd.Context(), cmd.OutOrStdout(), p)
		},
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags, constants.DefaultPlanFileName)

	return cmd
}

// runDryRun prints the expanded step requests without touching any repo.
func runDryRun(out io.Writer, p *plan.Plan) error {
	requests := plan.PlanSteps(p)
	n := plain.New(out, requests)
	for i, req := range requests {
		n.Notify(i, req.Run, plan.StatusPending, "", false, false)
	}
	return nil
}

// runPipeline builds the production Driver wiring (real git repo, real
// shell executor, a TTY-aware Notifier) and drives p to completion.
func runPipeline(ctx context.Context, out io.Writer, p *plan.Plan) error {
	requests := plan.PlanSteps(p)

	opts := driver.Options{
		Provision: worktree.Provision,
		NewRepo: func(dir string) repo.Repo {
			return repo.New(dir)
		},
		Executor: execshell.New(),
		Notifier: selectNotifier(out, requests),
		SetEnv:   os.Setenv,
	}

	return driver.Run(ctx, p, opts)
}

// selectNotifier picks a TUI progress-bar notifier for an interactive
// terminal (unless NO_COLOR is set), and a plain line-per-event notifier
// otherwise, matching the same detection used for log output.
func selectNotifier(out io.Writer, requests []plan.StepRequest) notify.Notifier {
	if f, ok := out.(*os.File); ok && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd())) {
		return tui.New(out, requests)
	}
	return plain.New(out, requests)
}

// terminalCheck is a variable for the terminal check function, allowing tests
// to override it without a real TTY.
//
//nolint:gochecknoglobals // Required for test injection of terminal detection
var terminalCheck = isStdinTerminal

func isTerminal() bool {
	return terminalCheck()
}

func isStdinTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirmRun asks the user to confirm a real (non-dry-run) invocation before
// the worktree is force-recreated and steps start committing. Declining
// leaves the base repository and any prior worktree untouched.
func confirmRun(p *plan.Plan) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Run %d step(s) against %s@%s?", len(p.Steps), p.Origin.RepoPath, p.Origin.Revision)).
				Description("This force-recreates the .mend/worktree2 working tree and commits after each step.").
				Affirmative("Yes, run").
				Negative("No, cancel").
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirm, nil
}

// newRunID generates a correlation ID for one CLI invocation's log entries.
// Falls back to a fixed placeholder in the unlikely event the platform's
// random source is unavailable, since a missing run_id must never abort
// the run.
func newRunID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return "unknown"
	}
	return id.String()
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info)
	return cmd.ExecuteContext(ctx)
}
