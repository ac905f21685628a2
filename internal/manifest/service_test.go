package manifest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEndpoints_UsesPublishedManifest(t *testing.T) {
	ClearCache()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		require.Equal(t, Path, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":2,"http":{"auth_login":"/v2/login"}}`))
	}))
	defer srv.Close()

	m := GetEndpoints(context.Background(), srv.Client(), srv.URL)
	require.Equal(t, 2, m.Version)
	require.Equal(t, "/v2/login", m.HTTP.Login)
	require.Equal(t, "/auth/me", m.HTTP.Me, "missing endpoints fall back to defaults")
	require.Equal(t, "/register", m.HTTP.Register)

	_ = GetEndpoints(context.Background(), srv.Client(), srv.URL)
	require.Equal(t, int32(1), hits.Load(), "second call must be served from cache")
}

func TestGetEndpoints_NotPublishedCachesDefaults(t *testing.T) {
	ClearCache()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	m := GetEndpoints(context.Background(), srv.Client(), srv.URL)
	require.Equal(t, Default(), m)
	_ = GetEndpoints(context.Background(), srv.Client(), srv.URL)
	require.Equal(t, int32(1), hits.Load())
}

func TestGetEndpoints_UnreachableIsRetried(t *testing.T) {
	ClearCache()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	m := GetEndpoints(context.Background(), nil, url)
	require.Equal(t, Default(), m)
	require.Nil(t, GetCached(url))
}
