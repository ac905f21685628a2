// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/httperrors"
	"taskboard/cli/internal/logging"
)

// DedupMode selects how concurrent session checks are collapsed.
type DedupMode string

const (
	// DedupSnapshot answers a check that arrives while another is running with the
	// current state, without waiting for the running one.
	DedupSnapshot DedupMode = "snapshot"
	// DedupSingleFlight makes concurrent callers wait for the running check's result.
	DedupSingleFlight DedupMode = "singleflight"
)

// User-facing login failure messages.
const (
	MsgInvalidCredentials = "Invalid username or password."
	MsgValidation         = "Please enter both a username and a password."
	MsgRateLimited        = "Too many login attempts. Please wait a moment and try again."
	MsgNetworkUnavailable = "Cannot reach the server. Check your connection and try again."
	MsgLoginFailed        = "Login failed"
	MsgSessionExpired     = "Your session has expired. Please log in again."
)

// Config holds the routes the controller navigates to and the de-dup policy.
type Config struct {
	LandingRoute string
	LoginRoute   string
	Dedup        DedupMode
	// CheckTimeout bounds a shared session check in DedupSingleFlight mode,
	// which runs detached from any single caller. Zero means unbounded.
	CheckTimeout time.Duration
}

// DefaultConfig returns the routes used by the taskboard client.
func DefaultConfig() Config {
	return Config{
		LandingRoute: "/dashboard",
		LoginRoute:   "/auth/login",
		Dedup:        DedupSnapshot,
		CheckTimeout: 10 * time.Second,
	}
}

// Controller performs every identity transition of a Store.
type Controller struct {
	store    *Store
	provider Provider
	nav      Navigator
	cfg      Config
	log      *slog.Logger

	group singleflight.Group
}

// NewController wires a controller. nav may be nil when nothing consumes navigations;
// a nil logger uses slog.Default().
func NewController(store *Store, provider Provider, nav Navigator, cfg Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.LandingRoute == "" {
		cfg.LandingRoute = def.LandingRoute
	}
	if cfg.LoginRoute == "" {
		cfg.LoginRoute = def.LoginRoute
	}
	if cfg.Dedup == "" {
		cfg.Dedup = def.Dedup
	}
	return &Controller{store: store, provider: provider, nav: nav, cfg: cfg, log: logger}
}

// Store returns the store this controller writes to.
func (c *Controller) Store() *Store { return c.store }

// Config returns the effective configuration.
func (c *Controller) Config() Config { return c.cfg }

// Login exchanges credentials for an identity. On success the identity is stored and
// the landing route is scheduled. On failure the identity is left as it was, LastError
// holds the user-facing message and the returned error is an *errors.E of the
// matching kind.
func (c *Controller) Login(ctx context.Context, creds Credentials) (*Identity, error) {
	c.store.update(func(st *state) {
		st.loading = true
		st.lastError = ""
	})
	defer c.store.update(func(st *state) { st.loading = false })

	if strings.TrimSpace(creds.Identifier) == "" || strings.TrimSpace(creds.Secret) == "" {
		return nil, c.fail(apperrors.New(apperrors.ValidationError, MsgValidation))
	}

	res, err := c.callLogin(ctx, creds)
	if err != nil {
		return nil, c.fail(classifyTransport(err))
	}
	if !res.Success {
		return nil, c.fail(classifyResult(res))
	}
	if res.Identity == nil {
		return nil, c.fail(apperrors.New(apperrors.ProviderError, MsgLoginFailed))
	}

	id := *res.Identity
	c.store.update(func(st *state) { st.identity = &id })
	c.log.Info("login succeeded", slog.String("user", id.Username))
	c.schedule(c.cfg.LandingRoute)

	out := id
	return &out, nil
}

// Logout signs out locally and tells the provider on a best-effort basis.
// The identity is cleared and the login route scheduled even if the provider fails.
func (c *Controller) Logout(ctx context.Context) {
	defer func() {
		c.store.update(func(st *state) {
			st.identity = nil
			st.lastError = ""
		})
		c.schedule(c.cfg.LoginRoute)
	}()

	if err := c.callLogout(ctx); err != nil {
		c.log.Warn("remote logout failed", slog.String("error", logging.Mask(err.Error())))
	}
}

// CheckSession reports whether a session is valid, asking the provider only when no
// identity is held. It never fails: any provider problem means "not authenticated".
func (c *Controller) CheckSession(ctx context.Context) bool {
	if c.store.Snapshot().Authenticated() {
		return true
	}

	if c.cfg.Dedup == DedupSingleFlight {
		return c.checkShared(ctx)
	}

	if !c.store.beginCheck() {
		c.log.Debug("session check already in flight, using snapshot")
		return c.store.Snapshot().Authenticated()
	}
	defer c.store.endCheck()
	return c.verify(ctx)
}

func (c *Controller) checkShared(ctx context.Context) bool {
	ch := c.group.DoChan("session", func() (any, error) {
		c.store.beginCheck()
		defer c.store.endCheck()

		vctx := context.WithoutCancel(ctx)
		if c.cfg.CheckTimeout > 0 {
			var cancel context.CancelFunc
			vctx, cancel = context.WithTimeout(vctx, c.cfg.CheckTimeout)
			defer cancel()
		}
		return c.verify(vctx), nil
	})

	select {
	case r := <-ch:
		ok, _ := r.Val.(bool)
		return ok
	case <-ctx.Done():
		return c.store.Snapshot().Authenticated()
	}
}

func (c *Controller) verify(ctx context.Context) bool {
	id, err := c.callCurrentIdentity(ctx)
	if err != nil || id == nil {
		kind := apperrors.SessionVerificationFailure
		if httperrors.IsNetworkError(err) {
			kind = apperrors.ProviderUnavailable
		}
		attrs := []any{slog.String("kind", string(kind))}
		if err != nil {
			attrs = append(attrs, slog.String("error", logging.Mask(err.Error())))
		}
		c.log.Debug("session check failed", attrs...)

		c.store.update(func(st *state) { st.identity = nil })
		return false
	}

	ident := *id
	c.store.update(func(st *state) { st.identity = &ident })
	c.log.Debug("session restored", slog.String("user", ident.Username))
	return true
}

// Invalidate drops the identity after the API rejected the session (HTTP 401).
// It does not navigate; the next guarded navigation sends the user to login.
func (c *Controller) Invalidate(reason string) {
	if reason == "" {
		reason = MsgSessionExpired
	}
	c.store.update(func(st *state) {
		st.identity = nil
		st.lastError = reason
	})
	c.log.Info("session invalidated", slog.String("reason", reason))
}

func (c *Controller) fail(e *apperrors.E) error {
	c.store.update(func(st *state) { st.lastError = e.Message })
	c.log.Debug("login failed", slog.String("kind", string(e.Kind)))
	return e
}

func (c *Controller) schedule(path string) {
	if c.nav != nil && path != "" {
		c.nav.Schedule(path)
	}
}

// The call helpers turn a panicking provider into an ordinary error.

func (c *Controller) callLogin(ctx context.Context, creds Credentials) (res LoginResult, err error) {
	defer recoverInto(&err, "login")
	return c.provider.Login(ctx, creds)
}

func (c *Controller) callLogout(ctx context.Context) (err error) {
	defer recoverInto(&err, "logout")
	return c.provider.Logout(ctx)
}

func (c *Controller) callCurrentIdentity(ctx context.Context) (id *Identity, err error) {
	defer recoverInto(&err, "current identity")
	return c.provider.CurrentIdentity(ctx)
}

func recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("identity provider %s panicked: %v", op, r)
	}
}
