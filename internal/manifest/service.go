package manifest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// GetEndpoints returns the manifest for baseURL, using the RAM cache if available.
// If not cached, it fetches from the server. An API that does not publish a manifest
// gets the defaults, which are cached; a fetch that fails for any other reason also
// yields the defaults but is retried on the next call.
func GetEndpoints(ctx context.Context, client *http.Client, baseURL string) *Manifest {
	if cached := GetCached(baseURL); cached != nil {
		return cached
	}

	m, err := fetchFromServer(ctx, client, baseURL)
	switch {
	case err == nil:
		SetCached(baseURL, m)
		return m
	case errors.Is(err, errNotPublished):
		m = Default()
		SetCached(baseURL, m)
		return m
	default:
		slog.Debug("manifest fetch failed, using defaults",
			slog.String("base_url", baseURL),
			slog.String("error", err.Error()),
		)
		return Default()
	}
}
