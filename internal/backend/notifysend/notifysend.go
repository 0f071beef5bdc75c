// Package notifysend delivers notifications with the libnotify notify-send tool.
package notifysend

import (
	"context"
	"fmt"

	"github.com/xabinapal/desknotify/internal/notify"
	"github.com/xabinapal/desknotify/internal/runner"
)

// Name is the backend name used in configuration.
const Name = "notify-send"

const binary = "notify-send"

// Backend runs notify-send for every notification.
type Backend struct {
	runner  runner.CommandRunner
	appName string
}

// New creates a Backend. A nil runner uses os/exec.
func New(r runner.CommandRunner, appName string) *Backend {
	if r == nil {
		r = runner.New()
	}
	return &Backend{runner: r, appName: appName}
}

// Name implements notify.Backend.
func (b *Backend) Name() string {
	return Name
}

// Available reports whether notify-send can be found.
func (b *Backend) Available(ctx context.Context) error {
	if _, err := b.runner.LookPath(binary); err != nil {
		return fmt.Errorf("notify-send not found: %w", err)
	}
	return nil
}

// Send implements notify.Backend.
func (b *Backend) Send(ctx context.Context, n notify.Notification) notify.Response {
	path, err := b.runner.LookPath(binary)
	if err != nil {
		return notify.Failure(notify.CodeUnavailable, fmt.Sprintf("notify-send not found: %v", err))
	}

	if _, err := runner.Run(ctx, b.runner, path, Args(b.appName, n)...); err != nil {
		return notify.FailureFromError(notify.CodeRejected, err)
	}
	return notify.Success(nil)
}

// Args builds the notify-send command line for n.
func Args(appName string, n notify.Notification) []string {
	var args []string
	if appName != "" {
		args = append(args, "--app-name="+appName)
	}

	switch n.Icon.Kind() {
	case notify.IconName:
		args = append(args, "--icon="+n.Icon.Value())
	case notify.IconPath:
		p, _ := n.Icon.LocalPath()
		args = append(args, "--icon="+p)
	case notify.IconApp:
		args = append(args, "--hint=string:desktop-entry:"+n.Icon.Value())
	}

	if n.Sound != "" {
		args = append(args, "--hint=string:sound-name:"+n.Sound)
	}

	return append(args, "--", n.Title, n.Message)
}
