package terminal

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesFor(t *testing.T) {
	tests := []struct {
		name         string
		length, cols int
		want         int
	}{
		{name: "empty", length: 0, cols: 80, want: 2},
		{name: "fits", length: 40, cols: 80, want: 2},
		{name: "exact width", length: 80, cols: 80, want: 2},
		{name: "wraps", length: 81, cols: 80, want: 3},
		{name: "bad width", length: 100, cols: 0, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linesFor(tt.length, tt.cols))
		})
	}
}

func TestClearLines(t *testing.T) {
	var buf bytes.Buffer
	clearLines(&buf, 2)
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", buf.String())
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("alice\r\nlast"))
	var out bytes.Buffer

	line, err := ReadLine(r, &out, "Username: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", line)
	assert.Equal(t, "Username: ", out.String())

	line, err = ReadLine(r, &out, "> ")
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = ReadLine(r, &out, "> ")
	assert.ErrorIs(t, err, io.EOF)
}
