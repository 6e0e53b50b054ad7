package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

// flagOrEnv returns the flag value when it was set on the command line,
// otherwise the environment variable, otherwise the flag default.
func flagOrEnv(cmd *cobra.Command, name, value, env string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return value
	}
	return config.EnvOr(env, value)
}

func configPath(cmd *cobra.Command) string {
	return flagOrEnv(cmd, "config", flagConfig, config.EnvConfig)
}

func scoreFilePath(cmd *cobra.Command) string {
	return flagOrEnv(cmd, "score-file", flagScoreFile, config.EnvScoreFile)
}

func dbPath(cmd *cobra.Command) string {
	return flagOrEnv(cmd, "db", flagDBPath, config.EnvDB)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger opens the log file for the interactive game.
// The terminal belongs to the TUI, so logs are discarded if the file
// cannot be opened.
func fileLogger() (*log.Logger, func()) {
	path, err := highscore.ExpandHome(flagLogFile)
	if err != nil || flagLogFile == "" {
		return newLogger(io.Discard, "flappy"), func() {}
	}
	//nolint:errcheck // OpenFile reports the failure below
	os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, "flappy"), func() {}
	}
	return newLogger(f, "flappy"), func() { f.Close() }
}
