// Package osascript delivers notifications through macOS Notification Center
// by running AppleScript with the osascript binary.
package osascript

import (
	"context"
	"fmt"
	"strings"

	"github.com/xabinapal/desknotify/internal/notify"
	"github.com/xabinapal/desknotify/internal/runner"
)

// Name is the backend name used in configuration.
const Name = "osascript"

const binary = "osascript"

// Backend sends notifications with `osascript -e`.
type Backend struct {
	runner runner.CommandRunner
}

// New creates a Backend. A nil runner uses os/exec.
func New(r runner.CommandRunner) *Backend {
	if r == nil {
		r = runner.New()
	}
	return &Backend{runner: r}
}

// Name implements notify.Backend.
func (b *Backend) Name() string {
	return Name
}

// Available reports whether osascript can be found.
func (b *Backend) Available(ctx context.Context) error {
	if _, err := b.runner.LookPath(binary); err != nil {
		return fmt.Errorf("osascript not found: %w", err)
	}
	return nil
}

// Send implements notify.Backend.
func (b *Backend) Send(ctx context.Context, n notify.Notification) notify.Response {
	path, err := b.runner.LookPath(binary)
	if err != nil {
		return notify.Failure(notify.CodeUnavailable, fmt.Sprintf("osascript not found: %v", err))
	}

	if _, err := runner.Run(ctx, b.runner, path, "-e", Script(n)); err != nil {
		return notify.FailureFromError(notify.CodeRejected, err)
	}
	return notify.Success(nil)
}

// Script renders the AppleScript for n. macOS has no per-notification icon,
// so an app icon is emulated by sending the notification as that application.
// Path and name icons are ignored.
func Script(n notify.Notification) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "display notification %s with title %s", quote(n.Message), quote(n.Title))
	if n.Sound != "" {
		fmt.Fprintf(&sb, " sound name %s", quote(n.Sound))
	}

	if n.Icon.Kind() == notify.IconApp && n.Icon.Value() != "" {
		return fmt.Sprintf("tell application %s to %s", quote(n.Icon.Value()), sb.String())
	}
	return sb.String()
}

var scriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote renders s as an AppleScript string literal.
func quote(s string) string {
	return `"` + scriptEscaper.Replace(s) + `"`
}
