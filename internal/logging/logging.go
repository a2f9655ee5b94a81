package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const serviceName = "mealai"

// New builds the process logger: JSON records on stderr, mirrored to logFile
// when one is set, tagged with the service name and installed as the slog
// default. Debug level also records the call site. The returned cleanup func
// closes the log file; callers must defer it.
func New(level, logFile string) (*slog.Logger, func(), error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	out, cleanup, err := output(logFile)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	logger := slog.New(handler).With("service", serviceName)
	slog.SetDefault(logger)
	return logger, cleanup, nil
}

// ParseLevel accepts the slog level names in any case, with an optional
// offset such as "warn+2". A blank value selects info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: want debug, info, warn or error", s)
	}
	return lvl, nil
}

func output(logFile string) (io.Writer, func(), error) {
	if logFile == "" {
		return os.Stderr, func() {}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	cleanup := func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}
	return io.MultiWriter(os.Stderr, f), cleanup, nil
}
