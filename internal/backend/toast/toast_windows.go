//go:build windows

package toast

import (
	gotoast "git.sr.ht/~jackmordaunt/go-toast"

	"github.com/xabinapal/desknotify/internal/notify"
)

func (b *Backend) push(n notify.Notification) notify.Response {
	t := gotoast.Notification{
		AppID: b.appID,
		Title: n.Title,
		Body:  n.Message,
		Icon:  iconPath(n.Icon),
		Audio: AudioURI(n.Sound),
	}

	if err := t.Push(); err != nil {
		return notify.FailureFromError(notify.CodeRejected, err)
	}
	return notify.Success(nil)
}

func available() error {
	return nil
}
