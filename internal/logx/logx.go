// Package logx builds the program logger. The TUI owns the terminal, so
// log output only goes to a file when one is configured.
package logx

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to path at the given level and a function
// that closes the underlying file. An empty path discards everything.
func New(level, path string) (*log.Logger, func() error, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "epidraw",
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, closeFn, nil
}
