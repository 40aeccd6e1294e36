package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "fastakit",
		Level:  log.InfoLevel,
	})
}

// setLogLevel accepts debug, info, warn or error.
func setLogLevel(level string) error {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	logger.SetLevel(lvl)
	return nil
}

func logf(format string, args ...any) {
	logger.Infof(format, args...)
}

func debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
