package plan

// Status is a StepResponse's place in the executor's state machine.
type Status string

// Recognized statuses, in the order the state machine visits them.
const (
	StatusPending Status = "Pending"
	StatusRunning Status = "Running"
	StatusDone    Status = "Done"
	StatusFailed  Status = "Failed"
)

// StepRequest is the planner's immutable output for one step line.
type StepRequest struct {
	// Run is the original step line, verbatim.
	Run string
	// Scripts is the ordered sequence of shell-ready script strings:
	// before-hook scripts, then the main script, then after-hook scripts.
	Scripts []string
	// CommitMsg is the rendered commit message for this step.
	CommitMsg string
}

// StepResponse is the executor's mutable outcome for one step. It is
// created Pending and transitions to Running, then to exactly one of
// Done or Failed before control returns to the driver.
type StepResponse struct {
	// Revision is set iff the step's commit succeeded.
	Revision string
	HasRevision bool
	Status      Status
	// Output accumulates stdout+stderr of all scripts run for this step,
	// interleaved with internal progress markers.
	Output string
}

// NewStepResponse returns a fresh Pending response.
func NewStepResponse() *StepResponse {
	return &StepResponse{Status: StatusPending}
}

// AppendOutput appends text to the response's accumulated output.
func (r *StepResponse) AppendOutput(text string) {
	r.Output += text
}

// SetRevision records a successfully resolved revision.
func (r *StepResponse) SetRevision(rev string) {
	r.Revision = rev
	r.HasRevision = true
}
