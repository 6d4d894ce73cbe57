package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FacilityBooking/internal/config"
)

func writeAppConfig(t *testing.T, logFile, timezone string, dbPort int) string {
	t.Helper()
	content := fmt.Sprintf(`
[database]
host = "127.0.0.1"
port = %d
user = "booking"
password = "booking"
dbname = "booking"
sslmode = "disable"

[logs]
file = %q
level = "info"

[metrics]
enabled = false

[booking]
timezone = %q
`, dbPort, logFile, timezone)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// closedPort порт, на котором гарантированно никто не слушает
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

// openHandles число открытых дескрипторов процесса, указывающих на path
func openHandles(t *testing.T, path string) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("/proc/self/fd is not available")
	}

	n := 0
	for _, e := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", e.Name()))
		if err == nil && target == path {
			n++
		}
	}
	return n
}

func TestNewApp_InvalidTimezoneOpensNoLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	_, err := newApp(context.Background(), writeAppConfig(t, logFile, "Mars/Olympus", 5432))

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.NoFileExists(t, logFile)
}

func TestNewApp_DatabaseFailureReleasesLogFile(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	logFile := filepath.Join(dir, "app.log")

	_, err = newApp(context.Background(), writeAppConfig(t, logFile, "UTC", closedPort(t)))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
	assert.FileExists(t, logFile)
	assert.Zero(t, openHandles(t, logFile))
}
