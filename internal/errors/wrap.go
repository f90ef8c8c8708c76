package errors

import "fmt"

// Wrap attaches a taxonomy sentinel to the error that caused it, so a caller
// can check errors.Is against either the sentinel or the underlying cause.
// Returns nil if cause is nil, allowing for safe inline usage.
//
//	if err := repo.CommitAll(ctx, msg); err != nil {
//	    return errors.Wrap(errors.ErrCommit, err)
//	}
func Wrap(sentinel, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Wrapf is Wrap with an additional formatted message spliced between the
// sentinel and the cause.
//
//	return errors.Wrapf(errors.ErrWorktree, err, "could not add worktree at %q", dir)
func Wrapf(sentinel, cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s: %w", sentinel, msg, cause)
}
