// Package logging configures the shared structured logger for the restgen CLI.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "restgen",
})

// Setup applies the log level and output format selected on the command line.
// Unknown level strings fall back to info.
func Setup(level string, asJSON bool) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	if asJSON {
		logger.SetFormatter(log.JSONFormatter)
	}
}

// L returns the process-wide logger.
func L() *log.Logger {
	return logger
}
