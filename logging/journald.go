// Package logging wires this module's log output through
// github.com/coreos/pkg/capnslog, adding the pieces that package doesn't
// ship on its own: a systemd journal formatter and a redirect of anything
// written through the standard library's log package.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/coreos/pkg/capnslog"
)

// JournaldFormatter sends log entries to the systemd journal instead of an
// io.Writer. It is only useful on systems running systemd; construct it
// only after confirming journal.Enabled().
type JournaldFormatter struct{}

// NewJournaldFormatter returns a capnslog.Formatter that forwards entries
// to the local systemd journal via go-systemd's journal.Send.
func NewJournaldFormatter() *JournaldFormatter {
	return &JournaldFormatter{}
}

func (j *JournaldFormatter) Format(pkg string, level capnslog.LogLevel, depth int, entries ...capnslog.LogEntry) {
	var parts []string
	for _, e := range entries {
		parts = append(parts, strings.TrimRight(e.LogString(), "\n"))
	}
	msg := strings.Join(parts, " ")
	err := journal.Send(msg, journaldPriority(level), map[string]string{
		"SYSLOG_IDENTIFIER": pkg,
	})
	if err != nil {
		// The journal is unreachable (e.g. the daemon isn't running); fall
		// back so the entry isn't silently dropped.
		fmt.Println(pkg, msg)
	}
}

func journaldPriority(level capnslog.LogLevel) journal.Priority {
	switch level {
	case capnslog.CRITICAL:
		return journal.PriCrit
	case capnslog.ERROR:
		return journal.PriErr
	case capnslog.WARNING:
		return journal.PriWarning
	case capnslog.NOTICE:
		return journal.PriNotice
	case capnslog.INFO:
		return journal.PriInfo
	case capnslog.DEBUG, capnslog.TRACE:
		return journal.PriDebug
	default:
		return journal.PriInfo
	}
}

// Configure installs a journald formatter when requested and available,
// falling back to capnslog's glog-style formatter otherwise.
func Configure(journald bool) {
	if journald && journal.Enabled() {
		capnslog.SetFormatter(NewJournaldFormatter())
		return
	}
	capnslog.SetFormatter(capnslog.NewGlogFormatter(os.Stderr))
}
