package runner

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
)

// MockRunner is a CommandRunner that records invocations instead of running them.
// Tests in backend packages use it to assert on command lines.
type MockRunner struct {
	mu sync.Mutex

	// Paths maps executable names to resolved paths. Missing names fail LookPath.
	Paths map[string]string
	// RunFunc produces the result of each command. Nil means success with no output.
	RunFunc func(name string, args []string, stdout, stderr io.Writer) error

	Calls []MockCall
}

// MockCall is one recorded command invocation.
type MockCall struct {
	Name string
	Args []string
}

// NewMockRunner creates a MockRunner that resolves the given executables.
func NewMockRunner(paths map[string]string) *MockRunner {
	return &MockRunner{Paths: paths}
}

// LookPath implements CommandRunner.
func (m *MockRunner) LookPath(file string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Paths[file]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
}

// CommandContext implements CommandRunner.
func (m *MockRunner) CommandContext(ctx context.Context, name string, args ...string) Command {
	return &mockCommand{runner: m, ctx: ctx, name: name, args: args}
}

// CallCount returns the number of commands run so far.
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

type mockCommand struct {
	runner *MockRunner
	ctx    context.Context
	name   string
	args   []string
	stdout io.Writer
	stderr io.Writer
}

func (c *mockCommand) SetStdout(stdout io.Writer) { c.stdout = stdout }
func (c *mockCommand) SetStderr(stderr io.Writer) { c.stderr = stderr }

func (c *mockCommand) Run() error {
	if err := c.ctx.Err(); err != nil {
		return err
	}

	c.runner.mu.Lock()
	c.runner.Calls = append(c.runner.Calls, MockCall{Name: c.name, Args: append([]string(nil), c.args...)})
	fn := c.runner.RunFunc
	c.runner.mu.Unlock()

	if fn == nil {
		return nil
	}
	stdout, stderr := c.stdout, c.stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return fn(c.name, c.args, stdout, stderr)
}

// ErrMockExit is a convenience error for failing mock commands.
var ErrMockExit = errors.New("exit status 1")
