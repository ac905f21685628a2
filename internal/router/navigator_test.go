package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Match(t *testing.T) {
	table := NewTable(DefaultRoutes())

	tests := []struct {
		path      string
		wantName  string
		wantAuth  bool
		wantGuest bool
		params    map[string]string
	}{
		{path: "/", wantName: NameHome, params: map[string]string{}},
		{path: "/auth/login", wantName: NameLogin, wantGuest: true, params: map[string]string{}},
		{path: "/dashboard", wantName: NameDashboard, wantAuth: true, params: map[string]string{}},
		{path: "/dashboard/", wantName: NameDashboard, wantAuth: true, params: map[string]string{}},
		{path: "/dashboard/projects", wantName: NameProjects, wantAuth: true, params: map[string]string{}},
		{path: "/dashboard/projects/7", wantName: NameProjectDetail, wantAuth: true, params: map[string]string{"id": "7"}},
		{path: "/dashboard/tasks", wantName: NameTasks, wantAuth: true, params: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, ok := table.Match(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, m.Name)
			assert.Equal(t, tt.params, m.Params)

			var auth, guest bool
			for _, meta := range m.Chain {
				auth = auth || meta.RequiresAuth
				guest = guest || meta.GuestOnly
			}
			assert.Equal(t, tt.wantAuth, auth)
			assert.Equal(t, tt.wantGuest, guest)
		})
	}

	_, ok := table.Match("/dashboard/unknown")
	assert.False(t, ok)

	p, ok := table.PathOf(NameProjectDetail)
	require.True(t, ok)
	assert.Equal(t, "/dashboard/projects/:id", p)
}

func TestNavigator_NavigateRenders(t *testing.T) {
	var rendered []string
	r := RendererFunc(func(_ context.Context, loc Location) error {
		rendered = append(rendered, loc.FullPath())
		return nil
	})
	nav := NewNavigator(NewTable(DefaultRoutes()), NewGuard(&stubSession{ok: true}, GuardConfig{}, quiet), r, quiet)

	loc, err := nav.Navigate(context.Background(), "/dashboard/tasks?status=todo")
	require.NoError(t, err)
	assert.Equal(t, "todo", loc.Query.Get("status"))
	assert.Equal(t, []string{"/dashboard/tasks?status=todo"}, rendered)
	assert.Equal(t, loc, nav.Current())
}

func TestNavigator_NotFound(t *testing.T) {
	nav := NewNavigator(NewTable(DefaultRoutes()), NewGuard(&stubSession{}, GuardConfig{}, quiet), nil, quiet)
	_, err := nav.Navigate(context.Background(), "/nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNavigator_RedirectLoop(t *testing.T) {
	routes := []Route{
		{Path: "/a", Name: "a", Meta: Meta{GuestOnly: true}},
	}
	g := NewGuard(&stubSession{ok: true}, GuardConfig{LandingRoute: "/a"}, quiet)
	nav := NewNavigator(NewTable(routes), g, nil, quiet)

	_, err := nav.Navigate(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrRedirectLoop)
}

func TestNavigator_ScheduleLatestWins(t *testing.T) {
	nav := NewNavigator(NewTable(DefaultRoutes()), NewGuard(&stubSession{ok: true}, GuardConfig{}, quiet), nil, quiet)

	_, ok, err := nav.Flush(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	nav.Schedule("/dashboard")
	nav.Schedule("/dashboard/projects")
	p, ok := nav.Pending()
	require.True(t, ok)
	assert.Equal(t, "/dashboard/projects", p)

	loc, ok, err := nav.Flush(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, NameProjects, loc.Name)

	_, ok = nav.Pending()
	assert.False(t, ok)
}
