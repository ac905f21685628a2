package config

import (
	"os"
	"strings"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range Keys() {
		t.Setenv("TASKBOARD_"+strings.ToUpper(k), "")
	}
	t.Setenv("TASKBOARD_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, Defaults(), c)
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)

	c := Defaults()
	c.Provider = ProviderHTTP
	c.DataSource = DataSourceHTTP
	c.MockLatency = Duration(0)
	require.NoError(t, Save(c))

	info, err := os.Stat(filepath.Join(dir, "taskboard", "config.json"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TASKBOARD_PROVIDER", "http")
	t.Setenv("TASKBOARD_SESSION_DEDUP", "singleflight")
	t.Setenv("TASKBOARD_MOCK_LATENCY", "0s")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/taskboard")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, ProviderHTTP, c.Provider)
	require.Equal(t, DedupSingleFlight, c.SessionDedup)
	require.Equal(t, time.Duration(0), c.MockLatency.Std())
	require.Equal(t, "postgres://u:p@localhost/taskboard", c.DatabaseURL)
}

func TestLoad_InvalidEnvIsReported(t *testing.T) {
	isolate(t)
	t.Setenv("TASKBOARD_MOCK_LATENCY", "soon")

	_, err := Load()
	require.ErrorContains(t, err, "TASKBOARD_MOCK_LATENCY")
}

func TestSet(t *testing.T) {
	c := Defaults()

	require.NoError(t, c.Set("api_url", "https://api.example.com/"))
	require.Equal(t, "https://api.example.com", c.APIURL)

	require.NoError(t, c.Set("session_check_timeout", "3s"))
	require.Equal(t, 3*time.Second, c.SessionCheckTimeout.Std())

	require.ErrorContains(t, c.Set("colour", "blue"), "unknown config key")
}

func TestValidate(t *testing.T) {
	c := Defaults()
	c.DataSource = "sqlite"
	require.ErrorContains(t, c.Validate(), "data_source")

	c = Defaults()
	c.SessionDedup = "mutex"
	require.ErrorContains(t, c.Validate(), "session_dedup")
}
