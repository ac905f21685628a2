// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// SessionChecker is the part of the auth controller the guard needs.
type SessionChecker interface {
	CheckSession(ctx context.Context) bool
}

// SessionFunc adapts a function to SessionChecker. It lets a guard be built before
// the controller it consults.
type SessionFunc func(ctx context.Context) bool

func (f SessionFunc) CheckSession(ctx context.Context) bool { return f(ctx) }

// Action is what the guard decided for a navigation.
type Action int

const (
	Admit Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "admit"
}

// Decision is the outcome of Guard.Check. Location is set for redirects.
type Decision struct {
	Action   Action
	Location string
}

// Target describes a navigation attempt.
type Target struct {
	FullPath string
	Query    url.Values
	Matched  []Meta
}

// GuardConfig configures a Guard.
type GuardConfig struct {
	LoginRoute   string
	LandingRoute string
	// CheckTimeout bounds each session check so a hung provider cannot leave a
	// navigation pending. Zero disables the bound.
	CheckTimeout time.Duration
}

// Guard decides whether a navigation may proceed.
type Guard struct {
	session SessionChecker
	cfg     GuardConfig
	log     *slog.Logger
}

// NewGuard returns a guard backed by session.
func NewGuard(session SessionChecker, cfg GuardConfig, logger *slog.Logger) *Guard {
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = PathLogin
	}
	if cfg.LandingRoute == "" {
		cfg.LandingRoute = PathDashboard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{session: session, cfg: cfg, log: logger}
}

// Check evaluates the target's flags, OR-folded over the matched chain.
// Routes with no flag are admitted without consulting the session. The session is
// checked at most once per decision.
func (g *Guard) Check(ctx context.Context, t Target) Decision {
	var requiresAuth, guestOnly bool
	for _, m := range t.Matched {
		requiresAuth = requiresAuth || m.RequiresAuth
		guestOnly = guestOnly || m.GuestOnly
	}
	if !requiresAuth && !guestOnly {
		return Decision{Action: Admit}
	}

	authenticated := g.authenticated(ctx)

	if requiresAuth && !authenticated {
		loc := g.cfg.LoginRoute + "?" + url.Values{"redirect": {t.FullPath}}.Encode()
		g.log.Debug("guard: login required", slog.String("path", t.FullPath))
		return Decision{Action: Redirect, Location: loc}
	}
	if guestOnly && authenticated {
		loc := RedirectTarget(t.Query, g.cfg.LandingRoute)
		g.log.Debug("guard: already signed in", slog.String("path", t.FullPath), slog.String("to", loc))
		return Decision{Action: Redirect, Location: loc}
	}
	return Decision{Action: Admit}
}

func (g *Guard) authenticated(ctx context.Context) bool {
	if g.cfg.CheckTimeout <= 0 {
		return g.session.CheckSession(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.CheckTimeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() { done <- g.session.CheckSession(ctx) }()

	select {
	case ok := <-done:
		return ok
	case <-ctx.Done():
		g.log.Warn("guard: session check timed out", slog.Duration("timeout", g.cfg.CheckTimeout))
		return false
	}
}

// RedirectTarget returns the redirect query value when it is a local path,
// otherwise fallback.
func RedirectTarget(q url.Values, fallback string) string {
	r := q.Get("redirect")
	if IsLocalPath(r) {
		return r
	}
	return fallback
}

// IsLocalPath reports whether p is an absolute path on this client rather than a
// scheme-relative or external URL.
func IsLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
