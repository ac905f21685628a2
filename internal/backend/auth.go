// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taskboard/cli/internal/auth"
)

var _ auth.Provider = (*HTTP)(nil)

// Login posts {username, password} to the login endpoint.
// A 2xx answer carries {success, data: {token, user}}; 401, 400/422 and 429 are
// rejected logins and come back as a LoginResult with the matching code. Anything
// else is an error.
func (h *HTTP) Login(ctx context.Context, creds auth.Credentials) (auth.LoginResult, error) {
	body, err := json.Marshal(map[string]string{
		"username": creds.Identifier,
		"password": creds.Secret,
	})
	if err != nil {
		return auth.LoginResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Login, bytes.NewReader(body))
	if err != nil {
		return auth.LoginResult{}, err
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return auth.LoginResult{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
	case resp.StatusCode == http.StatusUnauthorized:
		return rejected(payload, auth.CodeInvalidCredentials), nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return rejected(payload, auth.CodeValidationError), nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return rejected(payload, auth.CodeRateLimited), nil
	default:
		return auth.LoginResult{}, fmt.Errorf("login failed: %d %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if ok, present := payload["success"].(bool); present && !ok {
		return rejected(payload, auth.CodeInvalidCredentials), nil
	}

	token := findBearerTokenInHeaders(resp.Header)
	if token == "" {
		token = findToken(payload)
	}
	if token == "" {
		return auth.LoginResult{}, errors.New("login response carried no token")
	}
	id := identityFrom(payload)
	if id == nil {
		return auth.LoginResult{}, errors.New("login response carried no user")
	}
	if err := h.tokens.SaveAccessToken(token); err != nil {
		return auth.LoginResult{}, fmt.Errorf("save token: %w", err)
	}

	return auth.LoginResult{
		Success:  true,
		Identity: id,
		Message:  stringField(payload, "message"),
	}, nil
}

// Logout tells the API to end the session. The stored token is dropped whatever the
// API answers.
func (h *HTTP) Logout(ctx context.Context) error {
	defer func() { _ = h.tokens.ClearAuth() }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Logout, nil)
	if err != nil {
		return err
	}
	h.setStandardHeaders(req)
	if ok, err := h.setAuth(req); err != nil || !ok {
		return err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	b, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("logout failed: %d %s", resp.StatusCode, strings.TrimSpace(string(b)))
}

func rejected(payload map[string]any, defaultCode string) auth.LoginResult {
	code := stringField(payload, "code")
	if code == "" {
		code = defaultCode
	}
	return auth.LoginResult{Success: false, Code: code, Message: stringField(payload, "message")}
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
