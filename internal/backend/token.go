// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"strings"
)

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") {
		if rest := strings.TrimSpace(v[6:]); rest != "" {
			return rest
		}
	}
	return ""
}

// findBearerTokenInHeaders looks for a Bearer token in the Authorization header first,
// then in any header whose value carries a bearer prefix.
func findBearerTokenInHeaders(h http.Header) string {
	if t := parseBearerToken(h.Get("Authorization")); t != "" {
		return t
	}
	for _, vals := range h {
		for _, v := range vals {
			lower := strings.ToLower(v)
			if idx := strings.Index(lower, "bearer "); idx >= 0 {
				if token := strings.TrimSpace(v[idx+len("bearer "):]); token != "" {
					return token
				}
			}
		}
	}
	return ""
}

// findToken recursively searches a decoded JSON body for an access token.
// It handles token, access_token, accessToken and "Authorization: Bearer" shapes.
func findToken(node any) string {
	switch v := node.(type) {
	case map[string]any:
		for k, vv := range v {
			s, ok := vv.(string)
			if !ok {
				continue
			}
			switch strings.ToLower(strings.ReplaceAll(k, "_", "")) {
			case "token", "accesstoken", "access", "bearer":
				if t := strings.TrimSpace(s); t != "" {
					return t
				}
			case "authorization":
				if t := parseBearerToken(s); t != "" {
					return t
				}
			}
		}
		for _, vv := range v {
			if t := findToken(vv); t != "" {
				return t
			}
		}
	case []any:
		for _, e := range v {
			if t := findToken(e); t != "" {
				return t
			}
		}
	}
	return ""
}
