// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe keychain operations for taskboard.
// This module manages all interactions with the OS keychain/credential store,
// providing a unified interface for storing and retrieving the secrets the CLI keeps
// between runs: the opaque bearer token issued by the identity provider and the
// PostgreSQL URL used by the postgres data source.
//
// Native backends (macOS Keychain, Windows Credential Manager, Secret Service, KWallet,
// pass) are preferred. Where none is available an encrypted file keyring under the XDG
// state directory is used.
package keychain

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"taskboard/cli/internal/xdg"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	globalError   error
	mu            sync.Mutex
)

// Manager provides centralized, thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "taskboard"

// Keys used for storing secrets in the OS keychain.
const (
	KeyAccessToken = "auth_access_token"
	KeyDatabaseURL = "database_url"
)

// passwordEnv supplies the passphrase of the file keyring fallback.
const passwordEnv = "TASKBOARD_KEYRING_PASSWORD"

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewManagerWithRing wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	globalManager, globalError = NewManager()
	if globalError != nil {
		return nil, globalError
	}

	return globalManager, nil
}

// openRing opens the OS keyring, preferring native platform backends and falling
// back to an encrypted file under the XDG state directory.
func openRing() (keyring.Keyring, error) {
	var allowedBackends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		allowedBackends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		allowedBackends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		allowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
		}
	}
	allowedBackends = append(allowedBackends, keyring.FileBackend)

	stateDir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}

	passphrase := os.Getenv(passwordEnv)
	if passphrase == "" {
		passphrase = ServiceName
	}

	cfg := keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  allowedBackends,
		PassPrefix:       ServiceName,
		WinCredPrefix:    ServiceName,
		KeychainName:     "login",
		FileDir:          filepath.Join(stateDir, "keyring"),
		FilePasswordFunc: keyring.FixedStringPrompt(passphrase),
	}

	return keyring.Open(cfg)
}

// SaveAccessToken stores the bearer token in the OS keychain.
// This method is thread-safe.
func (m *Manager) SaveAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyAccessToken, Data: []byte(token)})
}

// LoadAccessToken retrieves the bearer token. A missing token yields "" and no error.
// This method is thread-safe.
func (m *Manager) LoadAccessToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(KeyAccessToken)
}

// ClearAuth removes all auth-related secrets from the keychain.
// This method is thread-safe.
func (m *Manager) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(KeyAccessToken)
}

// SaveDatabaseURL stores the PostgreSQL URL in the keychain.
// This method is thread-safe.
func (m *Manager) SaveDatabaseURL(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyDatabaseURL, Data: []byte(url)})
}

// LoadDatabaseURL retrieves the PostgreSQL URL. A missing value yields "" and no error.
// This method is thread-safe.
func (m *Manager) LoadDatabaseURL() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.get(KeyDatabaseURL)
}

// ClearDatabaseURL removes the stored PostgreSQL URL.
// This method is thread-safe.
func (m *Manager) ClearDatabaseURL() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(KeyDatabaseURL)
}

// ClearAll removes all secrets from the keychain.
// This method is thread-safe and should be used with caution.
func (m *Manager) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.remove(KeyAccessToken); err != nil {
		return err
	}
	return m.remove(KeyDatabaseURL)
}

func (m *Manager) get(key string) (string, error) {
	it, err := m.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (m *Manager) remove(key string) error {
	err := m.ring.Remove(key)
	if err == nil || errors.Is(err, keyring.ErrKeyNotFound) || os.IsNotExist(err) {
		return nil
	}
	return err
}
