// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
	"strings"

	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/httperrors"
)

// Provider result codes understood by classifyResult.
const (
	CodeInvalidCredentials = "invalid_credentials"
	CodeValidationError    = "validation_error"
	CodeRateLimited        = "rate_limited"
)

// classifyResult maps a rejected login to an error kind. Unknown codes and a missing
// code are treated as bad credentials.
func classifyResult(res LoginResult) *apperrors.E {
	switch strings.ToLower(res.Code) {
	case CodeValidationError:
		return apperrors.New(apperrors.ValidationError, orDefault(res.Message, MsgValidation))
	case CodeRateLimited:
		return apperrors.New(apperrors.RateLimited, MsgRateLimited)
	case "", CodeInvalidCredentials:
		return apperrors.New(apperrors.InvalidCredentials, MsgInvalidCredentials)
	default:
		if res.Message != "" {
			return apperrors.New(apperrors.ProviderError, res.Message)
		}
		return apperrors.New(apperrors.InvalidCredentials, MsgInvalidCredentials)
	}
}

// classifyTransport maps an error returned by Provider.Login.
func classifyTransport(err error) *apperrors.E {
	var e *apperrors.E
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.ProviderError, "Login cancelled", err)
	}
	if httperrors.IsNetworkError(err) {
		return apperrors.Wrap(apperrors.NetworkUnavailable, MsgNetworkUnavailable, err)
	}
	return apperrors.Wrap(apperrors.ProviderError, MsgLoginFailed, err)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
