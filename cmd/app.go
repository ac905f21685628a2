// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/backend"
	"taskboard/cli/internal/config"
	"taskboard/cli/internal/dsn"
	"taskboard/cli/internal/keychain"
	"taskboard/cli/internal/logging"
	"taskboard/cli/internal/pgstore"
	"taskboard/cli/internal/router"
	"taskboard/cli/internal/views"
	"taskboard/cli/internal/workspace"
)

// app is everything a command needs, built once per process from the config.
type app struct {
	cfg config.Config
	log *slog.Logger

	keys     *keychain.Manager
	tokens   backend.TokenStore
	api      *backend.HTTP
	provider auth.Provider
	data     workspace.Source

	ctl   *auth.Controller
	guard *router.Guard
	nav   *router.Navigator
	views *views.Views

	closers []func()
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: logger}

	if km, err := keychain.GetManager(); err != nil {
		logger.Warn("keychain unavailable, the session will not outlive this process",
			slog.String("error", err.Error()))
		a.tokens = &backend.MemoryTokens{}
	} else {
		a.keys = km
		a.tokens = km
	}

	if cfg.Provider == config.ProviderHTTP || cfg.DataSource == config.DataSourceHTTP {
		a.api = backend.New(ctx, cfg.APIURL, a.tokens)
	}

	switch cfg.Provider {
	case config.ProviderHTTP:
		a.provider = a.api
	default:
		a.provider = backend.NewMock(backend.NewDemoDirectory(), a.tokens, cfg.MockLatency.Std())
	}

	if err := a.openData(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.wire(auth.DefaultStore(), nil)
	return a, nil
}

// wire builds the session controller, guard, navigator and views around the
// provider and data source. Views write to out (stdout when nil).
func (a *app) wire(store *auth.Store, out io.Writer) {
	authCfg := auth.Config{
		LandingRoute: router.PathDashboard,
		LoginRoute:   router.PathLogin,
		Dedup:        auth.DedupMode(a.cfg.SessionDedup),
		CheckTimeout: a.cfg.SessionCheckTimeout.Std(),
	}
	a.guard = router.NewGuard(router.SessionFunc(func(ctx context.Context) bool {
		return a.ctl.CheckSession(ctx)
	}), router.GuardConfig{
		LoginRoute:   authCfg.LoginRoute,
		LandingRoute: authCfg.LandingRoute,
		CheckTimeout: authCfg.CheckTimeout,
	}, a.log)
	a.nav = router.NewNavigator(router.NewTable(router.DefaultRoutes()), a.guard, nil, a.log)
	a.ctl = auth.NewController(store, a.provider, a.nav, authCfg, a.log)

	if a.api != nil {
		a.api.OnUnauthorized(func() { a.ctl.Invalidate("") })
	}

	var hint []string
	if a.cfg.Provider == config.ProviderMock {
		for _, u := range backend.DemoUsers() {
			hint = append(hint, fmt.Sprintf("%-6s / %s", u.Username, u.Password))
		}
	}
	a.views = views.New(store, a.data, out, views.Options{LoginHint: hint})
	a.nav.SetRenderer(a.views)
}

func (a *app) openData(ctx context.Context) error {
	switch a.cfg.DataSource {
	case config.DataSourceHTTP:
		a.data = a.api
	case config.DataSourcePostgres:
		url, err := a.databaseURL()
		if err != nil {
			return err
		}
		store, err := pgstore.Open(ctx, url, "")
		if err != nil {
			return fmt.Errorf("open postgres data source: %s", logging.Mask(err.Error()))
		}
		a.closers = append(a.closers, store.Close)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		if seeded, err := store.SeedIfEmpty(ctx, workspace.SeedProjects(), workspace.SeedTasks()); err != nil {
			return err
		} else if seeded {
			a.log.Info("seeded empty database with demo projects")
		}
		a.data = store
	default:
		a.data = workspace.NewMemoryStore(a.cfg.MockLatency.Std())
	}
	return nil
}

// databaseURL prefers the environment, then the URL saved by `connect`.
func (a *app) databaseURL() (string, error) {
	raw := a.cfg.DatabaseURL
	if raw == "" && a.keys != nil {
		saved, err := a.keys.LoadDatabaseURL()
		if err != nil {
			return "", err
		}
		raw = saved
	}
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("data_source is postgres but no database URL is configured; run 'taskboard connect'")
	}
	return dsn.Normalize(raw)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
