// Package backend selects and constructs notification backends by name.
package backend

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/xabinapal/desknotify/internal/backend/dbus"
	"github.com/xabinapal/desknotify/internal/backend/desktop"
	"github.com/xabinapal/desknotify/internal/backend/notifysend"
	"github.com/xabinapal/desknotify/internal/backend/osascript"
	"github.com/xabinapal/desknotify/internal/backend/toast"
	"github.com/xabinapal/desknotify/internal/notify"
	"github.com/xabinapal/desknotify/internal/runner"
)

// Auto selects the native backend for the running platform.
const Auto = "auto"

// ErrUnknownBackend is returned for names not in Names().
var ErrUnknownBackend = errors.New("unknown notification backend")

// Backend is a notify.Backend that can report whether it is usable.
type Backend interface {
	notify.Backend
	// Available returns nil when the backend can deliver notifications.
	Available(ctx context.Context) error
}

// Options configures backend construction.
type Options struct {
	// AppName identifies the sender where the platform supports it.
	AppName string
	// Runner executes external tools. Nil uses os/exec.
	Runner runner.CommandRunner
}

// Names returns every backend name accepted by New, excluding Auto.
func Names() []string {
	return []string{dbus.Name, desktop.Name, notifysend.Name, osascript.Name, toast.Name}
}

// Resolve maps Auto to the native backend for this platform and returns other
// names unchanged.
func Resolve(name string) string {
	if name == Auto || name == "" {
		return native(runtime.GOOS)
	}
	return name
}

func native(goos string) string {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return dbus.Name
	case "darwin":
		return osascript.Name
	case "windows":
		return toast.Name
	default:
		return desktop.Name
	}
}

// New constructs the backend called name.
func New(name string, opts Options) (Backend, error) {
	switch Resolve(name) {
	case dbus.Name:
		return dbus.New(opts.AppName), nil
	case desktop.Name:
		return desktop.New(), nil
	case notifysend.Name:
		return notifysend.New(opts.Runner, opts.AppName), nil
	case osascript.Name:
		return osascript.New(opts.Runner), nil
	case toast.Name:
		return toast.New(opts.AppName), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// InstallDefault builds the named backend and makes it the target of
// notify.Notify and notify.NotifyWith.
func InstallDefault(name string, opts Options, dispatchOpts ...notify.Option) error {
	b, err := New(name, opts)
	if err != nil {
		return err
	}
	notify.SetDefault(notify.New(b, dispatchOpts...))
	return nil
}
