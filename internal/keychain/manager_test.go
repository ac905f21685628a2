// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManagerWithRing(keyring.NewArrayKeyring(nil))
}

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.LoadAccessToken()
	require.NoError(t, err)
	require.Empty(t, token, "missing token must not be an error")

	require.NoError(t, m.SaveAccessToken("mock:alice:123"))
	token, err = m.LoadAccessToken()
	require.NoError(t, err)
	require.Equal(t, "mock:alice:123", token)

	require.NoError(t, m.ClearAuth())
	token, err = m.LoadAccessToken()
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestManager_ClearAuthIsIdempotent(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.ClearAuth())
	require.NoError(t, m.ClearAuth())
}

func TestManager_ClearAllKeepsNothing(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.SaveAccessToken("t"))
	require.NoError(t, m.SaveDatabaseURL("postgres://u:p@localhost/taskboard"))

	require.NoError(t, m.ClearAll())

	token, _ := m.LoadAccessToken()
	url, _ := m.LoadDatabaseURL()
	require.Empty(t, token)
	require.Empty(t, url)
}
