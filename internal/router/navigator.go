// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
)

var (
	// ErrNotFound is returned when no route matches a path.
	ErrNotFound = errors.New("route not found")
	// ErrRedirectLoop is returned when guard redirects do not settle.
	ErrRedirectLoop = errors.New("too many redirects")
)

const maxRedirects = 5

// Renderer draws a location once it has been admitted.
type Renderer interface {
	Render(ctx context.Context, loc Location) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, loc Location) error

func (f RendererFunc) Render(ctx context.Context, loc Location) error { return f(ctx, loc) }

// Navigator performs navigations: match, guard, follow redirects, render.
// It also queues navigations scheduled by the auth controller.
type Navigator struct {
	table  *Table
	guard  *Guard
	render Renderer
	log    *slog.Logger

	mu         sync.Mutex
	current    Location
	pending    string
	hasPending bool
}

// NewNavigator builds a navigator. render may be nil.
func NewNavigator(table *Table, guard *Guard, render Renderer, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{table: table, guard: guard, render: render, log: logger}
}

// SetRenderer replaces the renderer. Used when views are built after the navigator.
func (n *Navigator) SetRenderer(r Renderer) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.render = r
}

// Navigate resolves target, applies the guard and renders the final location.
func (n *Navigator) Navigate(ctx context.Context, target string) (Location, error) {
	loc, err := n.Resolve(ctx, target)
	if err != nil {
		return Location{}, err
	}

	n.mu.Lock()
	n.current = loc
	render := n.render
	n.mu.Unlock()

	if render != nil {
		if err := render.Render(ctx, loc); err != nil {
			return loc, err
		}
	}
	return loc, nil
}

// Resolve runs matching and the guard, following redirects, without rendering or
// changing the current location.
func (n *Navigator) Resolve(ctx context.Context, target string) (Location, error) {
	for range maxRedirects + 1 {
		u, err := url.Parse(target)
		if err != nil {
			return Location{}, fmt.Errorf("parse %q: %w", target, err)
		}
		path := cleanPath(u.Path)
		m, ok := n.table.Match(path)
		if !ok {
			return Location{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		query := u.Query()
		d := n.guard.Check(ctx, Target{FullPath: fullPath(path, query), Query: query, Matched: m.Chain})
		if d.Action == Redirect {
			n.log.Debug("navigation redirected", slog.String("from", path), slog.String("to", d.Location))
			target = d.Location
			continue
		}
		return Location{Path: path, Query: query, Name: m.Name, Params: m.Params}, nil
	}
	return Location{}, fmt.Errorf("%w: last target %s", ErrRedirectLoop, target)
}

// Schedule records a navigation to perform on the next Flush. A later call replaces
// an earlier one that has not been flushed.
func (n *Navigator) Schedule(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = path
	n.hasPending = true
}

// Pending returns the scheduled navigation, if any.
func (n *Navigator) Pending() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending, n.hasPending
}

// Flush performs the scheduled navigation. It reports false when nothing was pending.
func (n *Navigator) Flush(ctx context.Context) (Location, bool, error) {
	n.mu.Lock()
	path, ok := n.pending, n.hasPending
	n.pending, n.hasPending = "", false
	n.mu.Unlock()

	if !ok {
		return Location{}, false, nil
	}
	loc, err := n.Navigate(ctx, path)
	return loc, true, err
}

// Current returns the last admitted location.
func (n *Navigator) Current() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Table returns the route table.
func (n *Navigator) Table() *Table { return n.table }
