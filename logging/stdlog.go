package logging

import (
	"log"

	"github.com/coreos/pkg/capnslog"
)

// init redirects anything written through the standard library's log
// package into capnslog, so code that mixes log.Println calls with
// capnslog still goes through one formatter and one set of log levels.
func init() {
	log.SetFlags(0)
	log.SetOutput(stdLogBridge{})
}

type stdLogBridge struct{}

var stdLogger = capnslog.NewPackageLogger("github.com/coreos/goflate", "log")

func (stdLogBridge) Write(p []byte) (int, error) {
	stdLogger.Print(string(p))
	return len(p), nil
}
