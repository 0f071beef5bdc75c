//go:build !windows

package logging

import (
	"io"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/rs/zerolog/journald"
)

// journalWriter returns a writer into the systemd journal when its socket is
// reachable. Tests replace it.
var journalWriter = func() (io.Writer, bool) {
	if !journal.Enabled() {
		return nil, false
	}
	return journald.NewJournalDWriter(), true
}
