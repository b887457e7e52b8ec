package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetRunLogger(t *testing.T) {
	t.Helper()
	runLogger = nil
	t.Cleanup(func() { runLogger = nil })
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReportFailure_UsesConfiguredLogFile(t *testing.T) {
	resetRunLogger(t)
	dir := t.TempDir()
	logFile := filepath.Join(dir, "checker.log")

	previous := configPath
	configPath = dir
	t.Cleanup(func() { configPath = previous })

	t.Setenv("WORKSPACE_PATH", filepath.Join(dir, "facilities.db"))
	t.Setenv("LOG_FILE", logFile)

	_, _, err := bootstrap(nil)
	require.NoError(t, err)
	require.NotNil(t, runLogger)

	reportFailure(errors.New("rooms check failed: layer Room is locked"))

	content := readLog(t, logFile)
	assert.Contains(t, content, "command failed")
	assert.Contains(t, content, "layer Room is locked")
}

func TestReportFailure_CheckCommand(t *testing.T) {
	resetRunLogger(t)
	dir := t.TempDir()
	logFile := filepath.Join(dir, "checker.log")
	t.Setenv("LOG_FILE", logFile)

	previous := configPath
	t.Cleanup(func() { configPath = previous })

	// The workspace has no feature schema and auto_migrate is off.
	RootCmd.SetArgs([]string{"check", "--config", dir, "--workspace", filepath.Join(dir, "empty.db")})
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	err := RootCmd.ExecuteContext(context.Background())
	require.Error(t, err)

	reportFailure(err)
	content := readLog(t, logFile)
	assert.Contains(t, content, "command failed")
	assert.Contains(t, content, "failed to open workspace")
}

func TestReportFailure_BeforeBootstrap(t *testing.T) {
	resetRunLogger(t)

	previous := configPath
	configPath = t.TempDir()
	t.Cleanup(func() { configPath = previous })
	t.Setenv("WORKSPACE_PATH", "")

	_, _, err := bootstrap(nil)
	require.Error(t, err)
	assert.Nil(t, runLogger)

	assert.NotPanics(t, func() { reportFailure(err) })
}
