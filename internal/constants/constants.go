// Package constants provides centralized constant values used throughout mend.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// File and directory names used by mend for logs and state.
const (
	// MendHome is the hidden directory name where mend stores its data.
	// Created in the user's home directory by default, or overridden by
	// the MEND_HOME environment variable.
	MendHome = ".mend"

	// LogsDir is the directory name where log files are stored, relative to MendHome.
	LogsDir = "logs"

	// CLILogFileName is the name of the rotating log file written by the CLI logger.
	CLILogFileName = "mend.log"

	// DefaultPlanFileName is the default plan file name used when -f/--file is omitted.
	DefaultPlanFileName = "mend.toml"
)

// Log rotation configuration constants.
const (
	// LogMaxSizeMB is the maximum size in megabytes of the log file before it gets rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of old log files to retain.
	LogMaxBackups = 5

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 30

	// LogCompress indicates whether the rotated log files should be compressed using gzip.
	LogCompress = true
)

// File permission constants.
const (
	// ConfigDirPerm is the permission mode for mend's own config/log directories.
	ConfigDirPerm = 0o750
)

// Git remote configuration.
const (
	// DefaultRemote is the default git remote name used where a remote must be named.
	DefaultRemote = "origin"
)
