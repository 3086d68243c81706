package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"

	"github.com/meigma/actpak/internal/config"
)

// levelFor maps a 0..5 verbosity to a log level.
// It returns false when logging is off.
func levelFor(verbosity int) (log.Level, bool) {
	switch {
	case verbosity <= 0:
		return 0, false
	case verbosity == 1:
		return log.WarnLevel, true
	case verbosity == 2:
		return log.InfoLevel, true
	default:
		return log.DebugLevel, true
	}
}

// newLogger builds the slog logger for cfg, writing to w unless cfg names a
// log file. It returns a nil logger when logging is off. The returned
// function releases the log file, if one was opened.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, func() error, error) {
	closer := func() error { return nil }
	level, ok := levelFor(cfg.Level)
	if !ok {
		return nil, closer, nil
	}

	if cfg.Path != "" {
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f.Close
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "actpak",
		Level:           level,
		ReportTimestamp: true,
	})
	return slog.New(handler), closer, nil
}
