package plain_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/craftvscruft/mend/internal/notify/plain"
	"github.com/craftvscruft/mend/internal/plan"
)

func TestNotify_WritesStatusLine(t *testing.T) {
	var buf bytes.Buffer
	n := plain.New(&buf, []plan.StepRequest{{Run: "echo hi"}})

	n.Notify(0, "echo hi", plan.StatusRunning, "", false, true)

	assert.Contains(t, buf.String(), "echo hi")
	assert.Contains(t, buf.String(), "Running")
}

func TestNotify_IgnoresOutOfRangeStepIndex(t *testing.T) {
	var buf bytes.Buffer
	n := plain.New(&buf, []plan.StepRequest{{Run: "echo hi"}})

	n.Notify(5, "echo hi", plan.StatusRunning, "", false, true)

	assert.Empty(t, buf.String())
}

func TestNotify_ShowsRevisionWhenPresent(t *testing.T) {
	var buf bytes.Buffer
	n := plain.New(&buf, []plan.StepRequest{{Run: "echo hi"}})

	n.Notify(0, "echo hi", plan.StatusDone, "abc1234", true, true)

	assert.Contains(t, buf.String(), "abc1234")
}

func TestNotifyDone_WritesCompletionLine(t *testing.T) {
	var buf bytes.Buffer
	n := plain.New(&buf, nil)

	n.NotifyDone()

	assert.True(t, strings.Contains(buf.String(), "done"))
}

func TestNotifyFailure_WritesFailingStepAndOutput(t *testing.T) {
	var buf bytes.Buffer
	n := plain.New(&buf, []plan.StepRequest{{Run: "cmd x"}})

	response := plan.NewStepResponse()
	response.AppendOutput("some failure output")

	n.NotifyFailure(plan.StepRequest{Run: "cmd x"}, response)

	assert.Contains(t, buf.String(), "cmd x")
	assert.Contains(t, buf.String(), "some failure output")
}
