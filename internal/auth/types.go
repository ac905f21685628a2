// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth holds the client-side session: who is signed in, whether a session check
// is running, and the last login error. The Controller is the only writer; everything
// else reads snapshots. Nothing here is persisted. The bearer token behind a session is
// kept by the Provider's own storage and the identity is rebuilt with CheckSession.
package auth

import "context"

// Identity is the signed-in user as the session sees it.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// DisplayName prefers the full name and falls back to the username.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Username
}

// Credentials are the transient login input. They are never logged or stored.
type Credentials struct {
	Identifier string
	Secret     string
}

// LoginResult is what an identity provider answers to a login attempt.
// Code is a machine-readable failure reason (invalid_credentials, validation_error,
// rate_limited); Message is the provider's own text.
type LoginResult struct {
	Success  bool
	Identity *Identity
	Message  string
	Code     string
}

// Provider performs the actual credential exchange and session lookup.
// Login returns an error only for transport failures; a rejected login is a
// LoginResult with Success false. CurrentIdentity fails when there is no valid session.
type Provider interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	Logout(ctx context.Context) error
	CurrentIdentity(ctx context.Context) (*Identity, error)
}

// Navigator receives navigations the controller wants performed after a transition.
type Navigator interface {
	Schedule(path string)
}
