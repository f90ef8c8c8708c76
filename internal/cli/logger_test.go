package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    zerolog.Level
	}{
		{"verbose wins", true, false, zerolog.DebugLevel},
		{"quiet", false, true, zerolog.WarnLevel},
		{"default", false, false, zerolog.InfoLevel},
		{"verbose and quiet both set prefers verbose", true, true, zerolog.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, selectLevel(tc.verbose, tc.quiet))
		})
	}
}

func TestInitLoggerWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestInitLoggerWithWriter_RedactsSensitiveFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().Str("password", "hunter2").Msg("login attempt")

	assert.NotContains(t, buf.String(), "hunter2")
}

func TestInitLoggerWithWriter_VerboseEnablesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)

	logger.Debug().Msg("debug message")
	assert.Contains(t, buf.String(), "debug message")
}

func TestInitLoggerWithWriter_QuietSuppressesInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, true, &buf)

	logger.Info().Msg("should not appear")
	logger.Warn().Msg("should appear")

	assert.NotContains(t, buf.String(), "should not appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestGetMendHome_UsesEnvVar(t *testing.T) {
	t.Setenv("MEND_HOME", "/custom/mend/home")

	home, err := getMendHome()
	require.NoError(t, err)
	assert.Equal(t, "/custom/mend/home", home)
}

func TestGetMendHome_DefaultsToUserHomeDir(t *testing.T) {
	t.Setenv("MEND_HOME", "")

	userHome, err := os.UserHomeDir()
	require.NoError(t, err)

	home, err := getMendHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userHome, ".mend"), home)
}

func TestCreateLogFileWriter_CreatesRotatingFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MEND_HOME", tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)
	defer func() { _ = writer.Close() }()

	_, err = writer.Write([]byte(`{"event":"test"}` + "\n"))
	require.NoError(t, err)

	logPath := filepath.Join(tmpDir, "logs", "mend.log")
	_, statErr := os.Stat(logPath)
	assert.NoError(t, statErr)
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("MEND_HOME", "/custom/mend/home")

	path, err := LogFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/custom/mend/home", "logs", "mend.log"), path)
}

func TestFilteringWriteCloser_RedactsAndCloses(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("MEND_HOME", tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)

	_, err = writer.Write([]byte(`{"event":"login","password":"hunter2"}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	contents, err := os.ReadFile(filepath.Join(tmpDir, "logs", "mend.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(contents), "hunter2")
}

func TestCloseLogFile_NoopWhenNil(t *testing.T) {
	logFileWriter = nil
	assert.NotPanics(t, func() { CloseLogFile() })
}

func TestConfigureZerologGlobals(t *testing.T) {
	configureZerologGlobals()
	assert.Equal(t, "ts", zerolog.TimestampFieldName)
	assert.Equal(t, "event", zerolog.MessageFieldName)
}
