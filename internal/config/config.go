// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; secrets go to OS keychain.
// Every setting can be overridden for a single run with a TASKBOARD_* variable.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"taskboard/cli/internal/xdg"
)

// Identity provider choices.
const (
	ProviderMock = "mock"
	ProviderHTTP = "http"
)

// Data source choices.
const (
	DataSourceMemory   = "memory"
	DataSourceHTTP     = "http"
	DataSourcePostgres = "postgres"
)

// Session check de-duplication modes.
const (
	DedupSnapshot     = "snapshot"
	DedupSingleFlight = "singleflight"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	LogLevel   string `json:"log_level"`
	Provider   string `json:"provider"`
	DataSource string `json:"data_source"`
	APIURL     string `json:"api_url"`
	// DatabaseURL is only read from the environment or the keychain; it is never saved.
	DatabaseURL string `json:"-"`

	MockLatency         Duration `json:"mock_latency"`
	SessionDedup        string   `json:"session_dedup"`
	SessionCheckTimeout Duration `json:"session_check_timeout"`
}

// Duration is a time.Duration that reads and writes as a Go duration string.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		LogLevel:            "warn",
		Provider:            ProviderMock,
		DataSource:          DataSourceMemory,
		APIURL:              "http://localhost:3000",
		MockLatency:         Duration(300 * time.Millisecond),
		SessionDedup:        DedupSnapshot,
		SessionCheckTimeout: Duration(10 * time.Second),
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults. Environment overrides apply last.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if err == nil {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Validate rejects values the rest of the CLI cannot act on.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock, ProviderHTTP:
	default:
		return fmt.Errorf("provider must be %q or %q, got %q", ProviderMock, ProviderHTTP, c.Provider)
	}
	switch c.DataSource {
	case DataSourceMemory, DataSourceHTTP, DataSourcePostgres:
	default:
		return fmt.Errorf("data_source must be one of memory, http, postgres, got %q", c.DataSource)
	}
	switch c.SessionDedup {
	case DedupSnapshot, DedupSingleFlight:
	default:
		return fmt.Errorf("session_dedup must be %q or %q, got %q", DedupSnapshot, DedupSingleFlight, c.SessionDedup)
	}
	if c.MockLatency < 0 {
		return errors.New("mock_latency must not be negative")
	}
	if c.SessionCheckTimeout <= 0 {
		return errors.New("session_check_timeout must be positive")
	}
	return nil
}

// setters maps each settable key onto its field. Keys match the JSON names.
var setters = map[string]func(c *Config, v string) error{
	"log_level":   func(c *Config, v string) error { c.LogLevel = v; return nil },
	"provider":    func(c *Config, v string) error { c.Provider = v; return nil },
	"data_source": func(c *Config, v string) error { c.DataSource = v; return nil },
	"api_url":     func(c *Config, v string) error { c.APIURL = strings.TrimRight(v, "/"); return nil },
	"session_dedup": func(c *Config, v string) error {
		c.SessionDedup = v
		return nil
	},
	"mock_latency": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.MockLatency = Duration(d)
		return nil
	},
	"session_check_timeout": func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.SessionCheckTimeout = Duration(d)
		return nil
	},
}

// Set assigns a single key from its string form.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := set(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applyEnv applies TASKBOARD_<KEY> overrides, plus TASKBOARD_DATABASE_URL / DATABASE_URL.
func applyEnv(c *Config) error {
	for _, key := range Keys() {
		if v := strings.TrimSpace(os.Getenv("TASKBOARD_" + strings.ToUpper(key))); v != "" {
			if err := c.Set(key, v); err != nil {
				return fmt.Errorf("env TASKBOARD_%s: %w", strings.ToUpper(key), err)
			}
		}
	}
	if v := strings.TrimSpace(os.Getenv("TASKBOARD_DATABASE_URL")); v != "" {
		c.DatabaseURL = v
	} else if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		c.DatabaseURL = v
	}
	return nil
}
