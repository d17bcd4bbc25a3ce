// Package obs holds the ambient observability stack shared by every
// chainrecon command: structured logging and Prometheus counters. Library
// packages (parser, chain, snapshot) never import obs directly — they
// return errors, and the CLI layer logs them here at the boundary, the
// same separation the teacher draws between common.Log and parser errors.
package obs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger. It is configured once by
// Init and used by every cmd/ entry point.
var Log = logrus.New().WithFields(logrus.Fields{"app": "chainrecon"})

// Init configures the logger's level and output. If logFile is non-empty,
// output switches to JSON-formatted lines appended to that file (useful
// for log shipping); otherwise it writes human-readable text to stderr.
func Init(level logrus.Level, logFile string) error {
	base := logrus.New()
	base.SetLevel(level)

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		base.SetOutput(f)
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:          true,
			DisableLevelTruncation: true,
		})
	}

	Log = base.WithFields(logrus.Fields{"app": "chainrecon"})
	return nil
}
