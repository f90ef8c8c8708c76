// Package notify defines the Notifier abstraction the core depends on for
// reporting per-step progress, plus a terminal done/failure event.
package notify

import "github.com/craftvscruft/mend/internal/plan"

// Notifier receives per-step progress events from the step executor and the
// two terminal events from the driver. Implementations must be tolerant of
// stepIndex values that exceed any pre-registered rows (silently drop).
type Notifier interface {
	// Notify updates the visual row for stepIndex. advance signals one unit
	// of progress completed. hasRevision distinguishes "no revision yet"
	// from a resolved revision, since the revision is optional.
	Notify(stepIndex int, runText string, status plan.Status, revision string, hasRevision, advance bool)
	// NotifyDone reports the terminal success/completion event.
	NotifyDone()
	// NotifyFailure reports the terminal failure event carrying the
	// failing step.
	NotifyFailure(request plan.StepRequest, response *plan.StepResponse)
}
