// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router resolves view paths such as /dashboard/projects/3 to named routes,
// gates every navigation through the Guard and keeps track of the current location.
package router

import (
	"net/url"
	"strings"
)

// Route names.
const (
	NameLogin         = "login"
	NameHome          = "home"
	NameDashboard     = "dashboard"
	NameProjects      = "projects"
	NameProjectDetail = "project-detail"
	NameTasks         = "tasks"
)

// Well-known paths.
const (
	PathLogin     = "/auth/login"
	PathHome      = "/"
	PathDashboard = "/dashboard"
)

// Meta carries the authorization flags of one route record.
type Meta struct {
	RequiresAuth bool
	GuestOnly    bool
}

// Route is one record of the route tree. Child paths are relative to the parent.
type Route struct {
	Path     string
	Name     string
	Meta     Meta
	Children []Route
}

// Match is the result of resolving a path.
type Match struct {
	Name   string
	Params map[string]string
	// Chain holds the Meta of every record from the root to the matched leaf.
	Chain []Meta
}

// Location is where the navigator currently is.
type Location struct {
	Path   string
	Query  url.Values
	Name   string
	Params map[string]string
}

// FullPath returns the path with its query string.
func (l Location) FullPath() string {
	return fullPath(l.Path, l.Query)
}

func fullPath(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// DefaultRoutes is the taskboard route tree.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathLogin, Name: NameLogin, Meta: Meta{GuestOnly: true}},
		{Path: PathHome, Name: NameHome},
		{
			Path: PathDashboard,
			Meta: Meta{RequiresAuth: true},
			Children: []Route{
				{Path: "", Name: NameDashboard},
				{Path: "projects", Name: NameProjects},
				{Path: "projects/:id", Name: NameProjectDetail},
				{Path: "tasks", Name: NameTasks},
			},
		},
	}
}

type compiled struct {
	name     string
	segments []string
	chain    []Meta
}

// Table is a compiled route tree. It is immutable after NewTable.
type Table struct {
	entries []compiled
	byName  map[string]string
}

// NewTable flattens routes into matchable leaves. A record with children is reachable
// only through them.
func NewTable(routes []Route) *Table {
	t := &Table{byName: map[string]string{}}
	for _, r := range routes {
		t.add(r, nil, nil)
	}
	return t
}

func (t *Table) add(r Route, parent []string, chain []Meta) {
	segs := append(append([]string(nil), parent...), splitPath(r.Path)...)
	chain = append(append([]Meta(nil), chain...), r.Meta)

	if len(r.Children) == 0 {
		t.entries = append(t.entries, compiled{name: r.Name, segments: segs, chain: chain})
		if r.Name != "" {
			t.byName[r.Name] = "/" + strings.Join(segs, "/")
		}
		return
	}
	for _, child := range r.Children {
		t.add(child, segs, chain)
	}
}

// Match resolves path (without query). Trailing slashes are ignored.
func (t *Table) Match(path string) (Match, bool) {
	segs := splitPath(path)
	for _, e := range t.entries {
		if params, ok := matchSegments(e.segments, segs); ok {
			return Match{Name: e.name, Params: params, Chain: e.chain}, true
		}
	}
	return Match{}, false
}

// PathOf returns the path pattern registered for a route name.
func (t *Table) PathOf(name string) (string, bool) {
	p, ok := t.byName[name]
	return p, ok
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanPath drops duplicate and trailing slashes.
func cleanPath(p string) string {
	return "/" + strings.Join(splitPath(p), "/")
}
