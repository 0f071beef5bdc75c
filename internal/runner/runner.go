// Package runner abstracts external command execution so backends that shell
// out to OS tools can be tested without running them.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// CommandRunner is an interface for executing commands.
type CommandRunner interface {
	// LookPath finds the executable in PATH.
	LookPath(file string) (string, error)
	// CommandContext creates a command that can be executed.
	CommandContext(ctx context.Context, name string, args ...string) Command
}

// Command represents an executable command.
type Command interface {
	// SetStdout sets the stdout writer.
	SetStdout(stdout io.Writer)
	// SetStderr sets the stderr writer.
	SetStderr(stderr io.Writer)
	// Run starts the command and waits for it to complete.
	Run() error
}

// realCommandRunner is the real implementation using os/exec.
type realCommandRunner struct{}

// New creates a command runner backed by os/exec.
func New() CommandRunner {
	return &realCommandRunner{}
}

func (r *realCommandRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (r *realCommandRunner) CommandContext(ctx context.Context, name string, args ...string) Command {
	return &realCommand{cmd: exec.CommandContext(ctx, name, args...)}
}

// realCommand wraps exec.Cmd to implement the Command interface.
type realCommand struct {
	cmd *exec.Cmd
}

func (c *realCommand) SetStdout(stdout io.Writer) {
	c.cmd.Stdout = stdout
}

func (c *realCommand) SetStderr(stderr io.Writer) {
	c.cmd.Stderr = stderr
}

func (c *realCommand) Run() error {
	return c.cmd.Run()
}

// RunError is returned by Run when a command fails.
type RunError struct {
	Command string
	Stderr  string
	Err     error
}

// Error returns the command's stderr when it wrote any, so the tool's own
// diagnostic reaches the caller unchanged.
func (e *RunError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Run executes name with args and returns its trimmed stdout.
func Run(ctx context.Context, r CommandRunner, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := r.CommandContext(ctx, name, args...)
	cmd.SetStdout(&stdout)
	cmd.SetStderr(&stderr)

	if err := cmd.Run(); err != nil {
		return "", &RunError{
			Command: name,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}
