// Package cli provides the command-line interface for mend.
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	mendErrors "github.com/craftvscruft/mend/internal/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0
	// ExitError indicates a general error, including a failed pipeline step.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input (bad flags, bad plan file).
	ExitInvalidInput = 2
)

// GlobalFlags holds flags available to the mend command.
type GlobalFlags struct {
	// File is the path to the plan file (-f/--file, default "mend.toml").
	File string
	// DryRun renders the planned steps without running or committing anything.
	DryRun bool
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// AssumeYes skips the interactive confirmation prompt before a run.
	AssumeYes bool
}

// AddGlobalFlags adds mend's flags to the root command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags, defaultFile string) {
	cmd.PersistentFlags().StringVarP(&flags.File, "file", "f", defaultFile, "path to the plan file")
	cmd.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false, "print the planned steps without executing them")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVarP(&flags.AssumeYes, "yes", "y", false, "skip the confirmation prompt before a run")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, ExitInvalidInput (2) for a
// malformed plan or bad flags, and ExitError (1) for everything else,
// including a pipeline that halted on a failed step.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, mendErrors.ErrPlanLoad) {
		return ExitInvalidInput
	}

	errMsg := err.Error()
	if isInvalidInputError(errMsg) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
		"required flag",
		"unknown command",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
