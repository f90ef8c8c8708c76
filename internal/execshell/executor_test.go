package execshell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftvscruft/mend/internal/execshell"
)

func TestShellExecutor_CapturesStdoutAndExitZero(t *testing.T) {
	e := execshell.New()
	result, err := e.RunScript(context.Background(), t.TempDir(), "echo hi")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitStatus)
	assert.Equal(t, "hi\n", string(result.Stdout))
}

func TestShellExecutor_CapturesStderrSeparately(t *testing.T) {
	e := execshell.New()
	result, err := e.RunScript(context.Background(), t.TempDir(), "echo err 1>&2")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitStatus)
	assert.Empty(t, result.Stdout)
	assert.Equal(t, "err\n", string(result.Stderr))
}

func TestShellExecutor_NonZeroExitIsNotAnError(t *testing.T) {
	e := execshell.New()
	result, err := e.RunScript(context.Background(), t.TempDir(), "exit 3")
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitStatus)
}

func TestShellExecutor_RunsInGivenDirectory(t *testing.T) {
	dir := t.TempDir()
	e := execshell.New()
	result, err := e.RunScript(context.Background(), dir, "pwd")
	require.NoError(t, err)
	assert.Contains(t, string(result.Stdout), dir)
}
