//go:build !windows

package toast

import (
	"errors"

	"github.com/xabinapal/desknotify/internal/notify"
)

var errUnsupported = errors.New("toast notifications are only available on Windows")

func (b *Backend) push(n notify.Notification) notify.Response {
	return notify.FailureFromError(notify.CodeUnsupported, errUnsupported)
}

func available() error {
	return errUnsupported
}
