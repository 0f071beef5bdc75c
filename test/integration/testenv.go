//go:build integration

// Package integration provides integration tests for desknotify.
package integration

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/xabinapal/desknotify/internal/backend/dbus"
)

// TestEnv describes the desktop session the tests run against.
type TestEnv struct {
	BusAddress string
	ConfigDir  string
}

// SessionTestEnv returns a test environment bound to the current session bus.
// Each environment gets its own configuration directory.
func SessionTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{
		BusAddress: os.Getenv("DBUS_SESSION_BUS_ADDRESS"),
		ConfigDir:  TempConfigDir(t),
	}
}

// IsAvailable reports whether a notification server answers on the session bus.
func (e *TestEnv) IsAvailable(ctx context.Context) bool {
	if e.BusAddress == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return dbus.New("desknotify-test").Available(ctx) == nil
}

// SkipIfNotAvailable skips the test if no notification server is running.
func (e *TestEnv) SkipIfNotAvailable(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("D-Bus notification tests run on Linux only")
	}
	if !e.IsAvailable(context.Background()) {
		t.Skip("no notification server on the session bus (try dbus-run-session with dunst)")
	}
}

// WriteConfig writes a configuration file into the environment's config dir.
func (e *TestEnv) WriteConfig(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.ConfigDir, "config.yaml"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// BinaryPath returns the path to the desknotify binary.
func BinaryPath(t *testing.T) string {
	t.Helper()

	if path := os.Getenv("DESKNOTIFY_BINARY"); path != "" {
		return path
	}

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get caller information")
	}

	// Go up from test/integration to project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filename)))
	binaryPath := filepath.Join(projectRoot, "bin", "desknotify")

	if runtime.GOOS == "windows" {
		binaryPath += ".exe"
	}

	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Fatalf("desknotify binary not found at %s - run 'go build -o bin/desknotify ./cmd/desknotify' first", binaryPath)
	}

	return binaryPath
}

// Run runs the desknotify CLI inside the environment.
func (e *TestEnv) Run(ctx context.Context, t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.CommandContext(ctx, BinaryPath(t), args...)
	cmd.Env = append(os.Environ(), "DESKNOTIFY_CONFIG_DIR="+e.ConfigDir)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TempConfigDir creates a temporary config directory for testing.
func TempConfigDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "desknotify-config")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("failed to create temp config dir: %v", err)
	}
	return dir
}
