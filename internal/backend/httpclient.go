package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/cli/internal/manifest"
)

// HTTP implements the identity provider and the workspace source over REST endpoints.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:3000")
	baseURL string
	// endpoints contains the URL paths for various API endpoints
	endpoints manifest.HTTPEndpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	tokens TokenStore

	mu             sync.Mutex
	onUnauthorized func()
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
// It configures a 10-second timeout for all requests.
func newHTTP(baseURL string, endpoints manifest.HTTPEndpoints, tokens TokenStore, opts ...Option) *HTTP {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	h := &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints,
		client:    &http.Client{Timeout: 10 * time.Second},
		tokens:    tokens,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnUnauthorized registers fn to run when a data request is answered with 401.
// The session controller's Invalidate is the usual handler.
func (h *HTTP) OnUnauthorized(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnauthorized = fn
}

func (h *HTTP) unauthorized() {
	h.mu.Lock()
	fn := h.onUnauthorized
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (h *HTTP) setStandardHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "taskboard-cli/1.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (h *HTTP) setAuth(req *http.Request) (bool, error) {
	token, err := h.tokens.LoadAccessToken()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return true, nil
}

// GetVersion calls GET /version and returns the version string when available.
// No authentication required. This can be used to check connectivity to the API.
func (h *HTTP) GetVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Version, nil)
	if err != nil {
		return "", err
	}
	h.setStandardHeaders(req)
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "unknown", nil
	}
	var out struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Version == "" {
		return "unknown", nil
	}
	return out.Version, nil
}

// BaseURL returns the API root this client talks to.
func (h *HTTP) BaseURL() string { return h.baseURL }
