// Package desktop delivers notifications through the cross-platform beeep library.
package desktop

import (
	"context"

	"github.com/gen2brain/beeep"

	"github.com/xabinapal/desknotify/internal/notify"
)

// Name is the backend name used in configuration.
const Name = "beeep"

// Backend implements notify.Backend by calling beeep directly.
// beeep has no sound or per-app icon support; those fields are ignored.
type Backend struct {
	notifyFunc func(title, message, icon string) error
}

// New returns a Backend that uses beeep.
func New() *Backend {
	return &Backend{
		notifyFunc: func(title, message, icon string) error {
			return beeep.Notify(title, message, icon)
		},
	}
}

// Name implements notify.Backend.
func (b *Backend) Name() string {
	return Name
}

// Available always succeeds; beeep detects the platform facility on each call.
func (b *Backend) Available(ctx context.Context) error {
	return nil
}

// Send implements notify.Backend. beeep does not take a context; the
// dispatcher's timeout bounds the call.
func (b *Backend) Send(ctx context.Context, n notify.Notification) notify.Response {
	if err := b.notifyFunc(n.Title, n.Message, iconArg(n.Icon)); err != nil {
		return notify.FailureFromError(notify.CodeRejected, err)
	}
	return notify.Success(nil)
}

// iconArg maps an icon to beeep's single icon string: a file path or a theme name.
func iconArg(icon notify.Icon) string {
	switch icon.Kind() {
	case notify.IconPath:
		p, _ := icon.LocalPath()
		return p
	case notify.IconName:
		return icon.Value()
	default:
		return ""
	}
}
