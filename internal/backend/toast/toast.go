// Package toast delivers notifications as Windows toast notifications.
package toast

import (
	"context"
	"strings"

	"github.com/xabinapal/desknotify/internal/notify"
)

// Name is the backend name used in configuration.
const Name = "toast"

const soundEventPrefix = "ms-winsoundevent:"

// Backend pushes toast notifications on Windows. On other platforms every
// call fails with an unsupported error.
type Backend struct {
	appID string
}

// New creates a Backend that shows toasts under appID.
func New(appID string) *Backend {
	return &Backend{appID: appID}
}

// Name implements notify.Backend.
func (b *Backend) Name() string {
	return Name
}

// Send implements notify.Backend.
func (b *Backend) Send(ctx context.Context, n notify.Notification) notify.Response {
	if err := ctx.Err(); err != nil {
		return notify.FailureFromError(notify.CodeCanceled, err)
	}
	return b.push(n)
}

// Available reports whether toasts can be shown on this platform.
func (b *Backend) Available(ctx context.Context) error {
	return available()
}

// AudioURI maps a sound name to a toast audio source. Names without the
// ms-winsoundevent: scheme are taken from the Notification.* family, so
// "Mail" becomes ms-winsoundevent:Notification.Mail. An empty name keeps the
// system default.
func AudioURI(sound string) string {
	switch {
	case sound == "":
		return ""
	case strings.HasPrefix(sound, soundEventPrefix):
		return sound
	case strings.HasPrefix(sound, "Notification."):
		return soundEventPrefix + sound
	default:
		return soundEventPrefix + "Notification." + sound
	}
}

// iconPath returns the image shown on the toast; only path icons apply.
func iconPath(icon notify.Icon) string {
	p, ok := icon.LocalPath()
	if !ok {
		return ""
	}
	return p
}
