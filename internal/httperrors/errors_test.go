// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNetworkError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain failure", err: errors.New("login failed: 500"), want: false},
		{name: "deadline", err: fmt.Errorf("me: %w", context.DeadlineExceeded), want: true},
		{name: "url error", err: &url.Error{Op: "Post", URL: "http://x/auth/login", Err: errors.New("EOF")}, want: true},
		{name: "dns", err: &net.DNSError{Err: "no such host", Name: "api.invalid"}, want: true},
		{name: "refused", err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, want: true},
		{name: "tls", err: errors.New("x509: certificate signed by unknown authority"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNetworkError(tt.err))
		})
	}
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "localhost:3000", ExtractHostFromURL("http://localhost:3000/auth/login"))
	assert.Equal(t, "server", ExtractHostFromURL("::not a url"))
}
