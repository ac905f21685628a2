// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]pterm.LogLevel{
		"debug":   pterm.LogLevelDebug,
		" INFO ":  pterm.LogLevelInfo,
		"error":   pterm.LogLevelError,
		"trace":   pterm.LogLevelTrace,
		"off":     pterm.LogLevelDisabled,
		"":        pterm.LogLevelWarn,
		"verbose": pterm.LogLevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestSetup_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "warn")

	logger.Info("session check started")
	assert.Empty(t, buf.String())

	logger.Warn("remote logout failed", "identifier", "alice")
	assert.Contains(t, buf.String(), "remote logout failed")
	assert.Contains(t, buf.String(), "alice")
}
