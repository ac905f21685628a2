// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// ParseLevel maps a config log level onto pterm's levels. Unknown values yield warn.
func ParseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "info":
		return pterm.LogLevelInfo
	case "error":
		return pterm.LogLevelError
	case "off", "disabled":
		return pterm.LogLevelDisabled
	default:
		return pterm.LogLevelWarn
	}
}

// Setup builds an slog.Logger that renders through pterm's logger.
// w defaults to os.Stderr so log lines never mix with view output on stdout.
func Setup(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	pl := pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(ParseLevel(level))
	return slog.New(pterm.NewSlogHandler(pl))
}

// SetupDefault installs the logger returned by Setup as slog's default.
func SetupDefault(w io.Writer, level string) *slog.Logger {
	logger := Setup(w, level)
	slog.SetDefault(logger)
	return logger
}
