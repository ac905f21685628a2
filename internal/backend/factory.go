// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"time"

	"taskboard/cli/internal/manifest"
)

// New creates a REST client for baseURL, resolving endpoint paths from the API's
// manifest.
func New(ctx context.Context, baseURL string, tokens TokenStore, opts ...Option) *HTTP {
	h := newHTTP(baseURL, manifest.Default().HTTP, tokens, opts...)
	h.endpoints = manifest.GetEndpoints(ctx, h.client, h.baseURL).HTTP
	return h
}

// Option customizes an HTTP client.
type Option func(*HTTP)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) { h.client = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) { h.client.Timeout = d }
}
