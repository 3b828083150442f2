package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vango-dev/retain/internal/config"
	"github.com/vango-dev/retain/internal/errors"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger builds the process logger. Format auto picks text on a
// terminal and JSON otherwise.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	if format == "" || format == config.LogFormatAuto {
		format = config.LogFormatJSON
		if isTerminal(w) {
			format = config.LogFormatText
		}
	}

	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setup loads retain.json (or defaults) and installs the process logger.
func setup(flags *globalFlags) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(flags.dir)
	if err != nil {
		return nil, nil, err
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	if flags.logFormat != "" {
		format = flags.logFormat
	}

	if !isTerminal(os.Stderr) {
		errors.DisableColors()
	}

	logger := newLogger(os.Stderr, level, format)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
