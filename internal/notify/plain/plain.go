// Package plain implements a Notifier that writes one line per event to an
// io.Writer, for non-TTY output (piped stdout, CI logs, NO_COLOR).
package plain

import (
	"fmt"
	"io"
	"sync"

	"github.com/craftvscruft/mend/internal/plan"
)

// Notifier writes a line per notification to Out. Safe for the
// single-threaded driver; the mutex only guards against accidental reuse
// across goroutines in tests.
type Notifier struct {
	Out      io.Writer
	requests []plan.StepRequest
	mu       sync.Mutex
}

// New returns a plain Notifier with one step slot per request. It writes
// nothing until the first event.
func New(out io.Writer, requests []plan.StepRequest) *Notifier {
	return &Notifier{Out: out, requests: requests}
}

// Notify writes one line describing the step's current status.
func (n *Notifier) Notify(stepIndex int, runText string, status plan.Status, revision string, hasRevision, advance bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if stepIndex < 0 || stepIndex >= len(n.requests) {
		return
	}

	rev := "-"
	if hasRevision {
		rev = revision
	}

	marker := " "
	if advance {
		marker = "+"
	}

	fmt.Fprintf(n.Out, "[%d/%d]%s %-7s %s (rev %s)\n", stepIndex+1, len(n.requests), marker, status, runText, rev)
}

// NotifyDone writes the terminal completion line.
func (n *Notifier) NotifyDone() {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.Out, "done")
}

// NotifyFailure writes the failing step's line and its captured output.
func (n *Notifier) NotifyFailure(request plan.StepRequest, response *plan.StepResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.Out, "FAILED: %s\n%s\n", request.Run, response.Output)
}
