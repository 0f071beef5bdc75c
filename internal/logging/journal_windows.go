//go:build windows

package logging

import "io"

// journalWriter reports that no systemd journal exists on Windows.
var journalWriter = func() (io.Writer, bool) {
	return nil, false
}
