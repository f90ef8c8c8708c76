// Package tui implements a terminal Notifier that renders one progress row
// per step: a direct print-on-update call rather than a full bubbletea
// event loop, using bubbles' progress bar and lipgloss for styling.
package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/craftvscruft/mend/internal/plan"
)

// sparkle prefixes the terminal completion line, matching the original
// console notifier's "✨ Done in <elapsed>" summary.
const sparkle = "✨"

var (
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#81C784"})
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E57373"})
	styleRunning = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1565C0", Dark: "#64B5F6"})
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9E9E9E"})
)

// row is one step's rendering state.
type row struct {
	run      string
	status   plan.Status
	revision string
	progress progress.Model
	current  int
	total    int
}

// Notifier renders a row per step directly to Out on every update.
type Notifier struct {
	Out     io.Writer
	rows    []*row
	mu      sync.Mutex
	started time.Time
}

// New returns a tui Notifier with one pre-rendered row per request. The run
// clock starts here, so NotifyDone can report the total elapsed time.
func New(out io.Writer, requests []plan.StepRequest) *Notifier {
	rows := make([]*row, len(requests))
	for i, req := range requests {
		rows[i] = &row{
			run:      req.Run,
			status:   plan.StatusPending,
			progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
			total:    len(req.Scripts) + 1, // + 1 for the commit step
		}
	}
	return &Notifier{Out: out, rows: rows, started: time.Now()}
}

// Notify updates the row for stepIndex and redraws it. Out-of-range indices
// are silently dropped.
func (n *Notifier) Notify(stepIndex int, runText string, status plan.Status, revision string, hasRevision, advance bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if stepIndex < 0 || stepIndex >= len(n.rows) {
		return
	}

	r := n.rows[stepIndex]
	r.run = runText
	r.status = status
	if hasRevision {
		r.revision = revision
	}
	if advance && r.current < r.total {
		r.current++
	}

	fmt.Fprintln(n.Out, n.renderRow(stepIndex, r))
}

// NotifyDone prints the terminal completion line: a sparkle and the total
// elapsed time since the Notifier was constructed.
func (n *Notifier) NotifyDone() {
	n.mu.Lock()
	defer n.mu.Unlock()
	elapsed := time.Since(n.started).Round(10 * time.Millisecond)
	fmt.Fprintln(n.Out, styleDone.Render(fmt.Sprintf("%s Done in %s", sparkle, elapsed)))
}

// NotifyFailure prints the failing step's row and its captured output.
func (n *Notifier) NotifyFailure(request plan.StepRequest, response *plan.StepResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.Out, styleFailed.Render(fmt.Sprintf("Failed: %s", request.Run)))
	fmt.Fprintln(n.Out, response.Output)
}

// renderRow formats one row: an index, a progress bar, the step's status,
// the step's run text, and its revision if resolved.
func (n *Notifier) renderRow(stepIndex int, r *row) string {
	var percent float64
	if r.total > 0 {
		percent = float64(r.current) / float64(r.total)
	}
	bar := r.progress.ViewAs(percent)

	statusStyle := styleMuted
	switch r.status {
	case plan.StatusRunning:
		statusStyle = styleRunning
	case plan.StatusDone:
		statusStyle = styleDone
	case plan.StatusFailed:
		statusStyle = styleFailed
	case plan.StatusPending:
		statusStyle = styleMuted
	}

	rev := r.revision
	if rev == "" {
		rev = "-"
	}

	return fmt.Sprintf("[%2d] %s %-8s %s (%s)", stepIndex+1, bar, statusStyle.Render(string(r.status)), truncate(r.run, 40), rev)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
