// Package xdg provides helpers to resolve XDG Base Directory paths for taskboard.
// Configuration lives under the config dir; the encrypted file keyring and the
// shell history live under the state dir.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "taskboard"

// ConfigDir returns the XDG config directory for taskboard.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/taskboard when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for taskboard.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.local/state/taskboard when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return ensure("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func ensure(envKey, homeFallback string) (string, error) {
	base := os.Getenv(envKey)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeFallback)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
