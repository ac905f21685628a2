// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the identity providers and remote data source the CLI talks to.
// HTTP speaks to a taskboard REST API; Mock answers in-process from a Directory of
// demo users. Both keep the opaque bearer token in a TokenStore, never in the session.
package backend

import (
	"errors"
	"sync"
)

// ErrUnauthorized is returned when the API rejects or lacks a bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// TokenStore persists the bearer token between runs. keychain.Manager satisfies it.
type TokenStore interface {
	SaveAccessToken(token string) error
	// LoadAccessToken returns "" without error when no token is stored.
	LoadAccessToken() (string, error)
	ClearAuth() error
}

// MemoryTokens is a TokenStore that lives only as long as the process.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokens) SaveAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokens) LoadAccessToken() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokens) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
