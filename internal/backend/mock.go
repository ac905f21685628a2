// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"time"

	"taskboard/cli/internal/auth"
)

var _ auth.Provider = (*Mock)(nil)

// Mock is an in-process identity provider backed by a Directory, with artificial
// latency on every call.
type Mock struct {
	dir     *Directory
	tokens  TokenStore
	latency time.Duration
}

func NewMock(dir *Directory, tokens TokenStore, latency time.Duration) *Mock {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	return &Mock{dir: dir, tokens: tokens, latency: latency}
}

func (m *Mock) Login(ctx context.Context, creds auth.Credentials) (auth.LoginResult, error) {
	if err := m.wait(ctx); err != nil {
		return auth.LoginResult{}, err
	}
	res, token := m.dir.Authenticate(creds.Identifier, creds.Secret)
	if !res.Success {
		return res, nil
	}
	if err := m.tokens.SaveAccessToken(token); err != nil {
		return auth.LoginResult{}, fmt.Errorf("save token: %w", err)
	}
	return res, nil
}

// Logout revokes the stored token. The token is cleared locally even when it cannot
// be read or the call is cancelled.
func (m *Mock) Logout(ctx context.Context) error {
	defer func() { _ = m.tokens.ClearAuth() }()

	token, err := m.tokens.LoadAccessToken()
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	if err := m.wait(ctx); err != nil {
		return err
	}
	m.dir.Revoke(token)
	return nil
}

// Register creates an account in the directory. It does not sign in.
func (m *Mock) Register(ctx context.Context, reg Registration) (*auth.Identity, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	return m.dir.Register(reg)
}

func (m *Mock) CurrentIdentity(ctx context.Context) (*auth.Identity, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	token, err := m.tokens.LoadAccessToken()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrUnauthorized
	}
	id, err := m.dir.Resolve(token)
	if err != nil {
		_ = m.tokens.ClearAuth()
		return nil, err
	}
	return id, nil
}

func (m *Mock) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
