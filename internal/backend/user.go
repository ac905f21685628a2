// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"taskboard/cli/internal/auth"
)

// CurrentIdentity calls GET /auth/me with the stored bearer token.
// Without a token no request is made. A 401 drops the stored token.
func (h *HTTP) CurrentIdentity(ctx context.Context) (*auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Me, nil)
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	ok, err := h.setAuth(req)
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = h.tokens.ClearAuth()
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get-me failed: %d %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	id := identityFrom(payload)
	if id == nil {
		return nil, errors.New("unexpected response")
	}
	return id, nil
}

// identityFrom finds the user record in a response: data.user, user, data, or the
// body itself, in that order.
func identityFrom(payload map[string]any) *auth.Identity {
	candidates := []any{}
	if data, ok := payload["data"].(map[string]any); ok {
		candidates = append(candidates, data["user"], data)
	}
	candidates = append(candidates, payload["user"], payload)

	for _, c := range candidates {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		id := auth.Identity{
			ID:       idString(m["id"]),
			Username: stringField(m, "username"),
			Name:     stringField(m, "name"),
			Email:    stringField(m, "email"),
		}
		if id.Username == "" && id.Name == "" && id.Email == "" {
			continue
		}
		if id.Username == "" {
			id.Username, _, _ = strings.Cut(id.Email, "@")
		}
		return &id
	}
	return nil
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return ""
	}
}
