// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"

	"taskboard/cli/internal/auth"
	apperrors "taskboard/cli/internal/errors"
)

// Registration messages.
const (
	MsgUsernameRequired = "Username is required."
	MsgUsernameShort    = "Username must be at least 3 characters."
	MsgUsernameChars    = "Username may only contain letters, digits, '.', '_' and '-'."
	MsgNameRequired     = "Name is required."
	MsgEmailInvalid     = "Enter a valid email address."
	MsgPasswordShort    = "Password must be at least 6 characters."
	MsgUsernameTaken    = "Username is already taken."
	MsgEmailTaken       = "An account with this email already exists."
)

// Registration is a sign-up request.
type Registration struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registrar creates accounts. Registering does not start a session.
type Registrar interface {
	Register(ctx context.Context, reg Registration) (*auth.Identity, error)
}

var (
	_ Registrar = (*HTTP)(nil)
	_ Registrar = (*Mock)(nil)
)

// Normalize trims the fields and lowercases the email. The password is left alone.
func (r Registration) Normalize() Registration {
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return r
}

// Validate checks a normalized registration. Failures have kind ValidationError.
func (r Registration) Validate() error {
	switch {
	case r.Username == "":
		return apperrors.New(apperrors.ValidationError, MsgUsernameRequired)
	case len(r.Username) < 3:
		return apperrors.New(apperrors.ValidationError, MsgUsernameShort)
	case strings.IndexFunc(r.Username, invalidUsernameRune) >= 0:
		return apperrors.New(apperrors.ValidationError, MsgUsernameChars)
	case r.Name == "":
		return apperrors.New(apperrors.ValidationError, MsgNameRequired)
	case len(r.Password) < 6:
		return apperrors.New(apperrors.ValidationError, MsgPasswordShort)
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return apperrors.New(apperrors.ValidationError, MsgEmailInvalid)
	}
	return nil
}

func invalidUsernameRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return false
	case c == '.', c == '_', c == '-':
		return false
	}
	return true
}

// Register posts {username, name, email, password} to the register endpoint.
// 400/422 answers are validation failures and 409 means the account exists; both keep
// the server's message when it sends one. No token is stored even if one comes back.
func (h *HTTP) Register(ctx context.Context, reg Registration) (*auth.Identity, error) {
	reg = reg.Normalize()
	body, err := json.Marshal(reg)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Register, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var payload map[string]any
	_ = json.Unmarshal(raw, &payload)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, apperrors.New(apperrors.ValidationError, orMessage(payload, "Registration details are invalid."))
	case http.StatusConflict:
		return nil, apperrors.New(apperrors.AlreadyExists, orMessage(payload, MsgUsernameTaken))
	default:
		return nil, fmt.Errorf("register failed: %d %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if ok, present := payload["success"].(bool); present && !ok {
		return nil, apperrors.New(apperrors.ProviderError, orMessage(payload, "Registration failed."))
	}
	if id := identityFrom(payload); id != nil {
		return id, nil
	}
	return &auth.Identity{Username: reg.Username, Name: reg.Name, Email: reg.Email}, nil
}

func orMessage(payload map[string]any, def string) string {
	if m := stringField(payload, "message"); m != "" {
		return m
	}
	return def
}
