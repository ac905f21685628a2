// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/backend"
	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/manifest"
	"taskboard/cli/internal/mockserver"
	"taskboard/cli/internal/workspace"
)

func newAPI(t *testing.T) (*httptest.Server, *backend.HTTP, *backend.MemoryTokens) {
	t.Helper()
	manifest.ClearCache()
	s := mockserver.New(backend.NewDemoDirectory(), workspace.NewMemoryStore(0), "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	tokens := &backend.MemoryTokens{}
	return srv, backend.New(context.Background(), srv.URL, tokens), tokens
}

func TestHTTP_LoginResults(t *testing.T) {
	_, api, tokens := newAPI(t)
	ctx := context.Background()

	res, err := api.Login(ctx, auth.Credentials{Identifier: "alice", Secret: "nope"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, auth.CodeInvalidCredentials, res.Code)

	res, err = api.Login(ctx, auth.Credentials{Identifier: "al", Secret: "x"})
	require.NoError(t, err)
	assert.Equal(t, auth.CodeValidationError, res.Code)

	res, err = api.Login(ctx, auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.Identity)
	assert.Equal(t, "Alice Johnson", res.Identity.Name)

	token, _ := tokens.LoadAccessToken()
	assert.NotEmpty(t, token)
}

func TestHTTP_LoginWithoutUserStoresNoToken(t *testing.T) {
	manifest.ClearCache()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_, _ = w.Write([]byte(`{"success":true,"data":{"token":"abc"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tokens := &backend.MemoryTokens{}
	api := backend.New(context.Background(), srv.URL, tokens)

	_, err := api.Login(context.Background(), auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	require.Error(t, err)
	token, _ := tokens.LoadAccessToken()
	assert.Empty(t, token, "a login without a user must not leave a token behind")
}

func TestHTTP_Register(t *testing.T) {
	_, api, tokens := newAPI(t)
	ctx := context.Background()

	id, err := api.Register(ctx, backend.Registration{Username: "carol", Name: "Carol White", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "carol", id.Username)
	assert.Equal(t, "Carol White", id.Name)
	token, _ := tokens.LoadAccessToken()
	assert.Empty(t, token, "registering does not sign in")

	_, err = api.Register(ctx, backend.Registration{Username: "carol", Name: "Carol", Email: "c2@example.com", Password: "secret1"})
	assert.Equal(t, apperrors.AlreadyExists, apperrors.KindOf(err))
	assert.Equal(t, backend.MsgUsernameTaken, apperrors.MessageOf(err))

	_, err = api.Register(ctx, backend.Registration{Username: "dave", Name: "Dave", Email: "dave", Password: "secret1"})
	assert.Equal(t, apperrors.ValidationError, apperrors.KindOf(err))
	assert.Equal(t, backend.MsgEmailInvalid, apperrors.MessageOf(err))

	res, err := api.Login(ctx, auth.Credentials{Identifier: "carol", Secret: "secret1"})
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestHTTP_SessionRoundTrip(t *testing.T) {
	_, api, tokens := newAPI(t)
	ctx := context.Background()

	_, err := api.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, backend.ErrUnauthorized, "no token means no request")

	_, err = api.Login(ctx, auth.Credentials{Identifier: "bob", Secret: "builder"})
	require.NoError(t, err)

	id, err := api.CurrentIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", id.Username)

	require.NoError(t, api.Logout(ctx))
	token, _ := tokens.LoadAccessToken()
	assert.Empty(t, token)

	_, err = api.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestHTTP_StaleTokenIsDropped(t *testing.T) {
	_, api, tokens := newAPI(t)
	require.NoError(t, tokens.SaveAccessToken("mock:alice:not-a-uuid"))

	_, err := api.CurrentIdentity(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	token, _ := tokens.LoadAccessToken()
	assert.Empty(t, token)
}

func TestHTTP_WorkspaceCRUD(t *testing.T) {
	_, api, _ := newAPI(t)
	ctx := context.Background()
	_, err := api.Login(ctx, auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	require.NoError(t, err)

	projects, err := api.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 4)

	p, err := api.CreateProject(ctx, workspace.ProjectInput{Name: "Billing", Type: workspace.TypeMaintenance})
	require.NoError(t, err)
	assert.Equal(t, "Billing", p.Name)

	progress := 60
	p, err = api.UpdateProject(ctx, p.ID, workspace.ProjectPatch{Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 60, p.Progress)

	task, err := api.CreateTask(ctx, workspace.TaskInput{Title: "Invoice export", ProjectID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, "Billing", task.ProjectName)

	got, err := api.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task, got)

	require.NoError(t, api.DeleteTask(ctx, task.ID))
	_, err = api.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, workspace.ErrNotFound)

	_, err = api.CreateTask(ctx, workspace.TaskInput{Title: ""})
	assert.ErrorIs(t, err, workspace.ErrInvalid)

	require.NoError(t, api.DeleteProject(ctx, p.ID))
}

func TestHTTP_UnauthorizedFiresHook(t *testing.T) {
	_, api, _ := newAPI(t)
	var fired atomic.Int32
	api.OnUnauthorized(func() { fired.Add(1) })

	_, err := api.ListTasks(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	assert.Equal(t, int32(1), fired.Load())
}

func TestHTTP_ServerErrorIsTransportFailure(t *testing.T) {
	manifest.ClearCache()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := backend.New(context.Background(), srv.URL, nil)
	_, err := api.Login(context.Background(), auth.Credentials{Identifier: "alice", Secret: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestHTTP_GetVersion(t *testing.T) {
	_, api, _ := newAPI(t)
	v, err := api.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", v)
}

func TestHTTP_WithControllerInvalidates(t *testing.T) {
	_, api, _ := newAPI(t)
	store := auth.NewStore()
	c := auth.NewController(store, api, nil, auth.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	api.OnUnauthorized(func() { c.Invalidate("") })

	_, err := c.Login(context.Background(), auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	require.NoError(t, err)
	require.NoError(t, api.Logout(context.Background()))

	_, err = api.ListProjects(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
	assert.Nil(t, store.Snapshot().Identity)
	assert.Equal(t, auth.MsgSessionExpired, store.Snapshot().LastError)
}
