package tui

import (
	"os"
	"path/filepath"
	"strconv"
)

// Log rotation defaults
const (
	DefaultLogMaxSize    = 1  // megabytes
	DefaultLogMaxBackups = 2  // files
	DefaultLogMaxAge     = 30 // days
)

// GetLogFilePath returns the path to the log file.
// If SMALL_GIT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.small-git/logs/small-git.log
func GetLogFilePath() string {
	if customPath := os.Getenv("SMALL_GIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "small-git.log"
	}

	return filepath.Join(homeDir, ".small-git", "logs", "small-git.log")
}

// ApplyLogEnv overrides rotation settings from SMALL_GIT_LOG_MAX_SIZE,
// SMALL_GIT_LOG_MAX_BACKUPS and SMALL_GIT_LOG_MAX_AGE.
func ApplyLogEnv(opts LogOptions) LogOptions {
	if n, ok := envInt("SMALL_GIT_LOG_MAX_SIZE"); ok && n > 0 {
		opts.MaxSize = n
	}
	if n, ok := envInt("SMALL_GIT_LOG_MAX_BACKUPS"); ok && n >= 0 {
		opts.MaxBackups = n
	}
	if n, ok := envInt("SMALL_GIT_LOG_MAX_AGE"); ok && n > 0 {
		opts.MaxAge = n
	}
	return opts
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
