// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages. Login failures, absorbed session-check failures and
// transport problems all carry a Kind so callers can branch without string matching.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// InvalidCredentials indicates the identity provider rejected the identifier/secret pair.
	InvalidCredentials Kind = "invalid_credentials"
	// ValidationError indicates the credentials were malformed or incomplete.
	ValidationError Kind = "validation_error"
	// RateLimited indicates too many attempts were made in a short period.
	RateLimited Kind = "rate_limited"
	// NetworkUnavailable indicates the identity provider could not be reached.
	NetworkUnavailable Kind = "network_unavailable"
	// ProviderError is any other provider failure; Message carries its text.
	ProviderError Kind = "provider_error"
	// AlreadyExists indicates a registration for a username that is taken.
	AlreadyExists Kind = "already_exists"

	// SessionVerificationFailure marks a rejected session check. It is logged, never surfaced.
	SessionVerificationFailure Kind = "session_verification_failure"
	// ProviderUnavailable marks a transport failure during session verification.
	ProviderUnavailable Kind = "provider_unavailable"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the human-friendly message of the first *E in err's chain.
// Errors without a kind fall back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *E
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
