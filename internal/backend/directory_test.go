package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/cli/internal/auth"
	apperrors "taskboard/cli/internal/errors"
)

func TestDirectory_Authenticate(t *testing.T) {
	d := NewDemoDirectory()

	tests := []struct {
		name, id, secret string
		wantOK           bool
		wantCode         string
	}{
		{name: "valid", id: "alice", secret: "wonderland", wantOK: true},
		{name: "case-insensitive identifier", id: "  ALICE ", secret: "wonderland", wantOK: true},
		{name: "wrong secret", id: "alice", secret: "x", wantCode: auth.CodeInvalidCredentials},
		{name: "unknown user", id: "carol", secret: "x", wantCode: auth.CodeInvalidCredentials},
		{name: "empty", id: "", secret: "", wantCode: auth.CodeValidationError},
		{name: "too short", id: "al", secret: "x", wantCode: auth.CodeValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, token := d.Authenticate(tt.id, tt.secret)
			assert.Equal(t, tt.wantOK, res.Success)
			assert.Equal(t, tt.wantCode, res.Code)
			if tt.wantOK {
				id, err := d.Resolve(token)
				require.NoError(t, err)
				assert.Equal(t, "alice", id.Username)
			} else {
				assert.Empty(t, token)
			}
		})
	}
}

func TestDirectory_RateLimitPerIdentifier(t *testing.T) {
	d := NewDirectory(DemoUsers(), time.Hour, 2)

	for range 2 {
		res, _ := d.Authenticate("bob", "wrong")
		assert.Equal(t, auth.CodeInvalidCredentials, res.Code)
	}
	res, _ := d.Authenticate("bob", "builder")
	assert.Equal(t, auth.CodeRateLimited, res.Code)

	res, _ = d.Authenticate("alice", "wonderland")
	assert.True(t, res.Success, "other identifiers are unaffected")
}

func TestDirectory_ResolveAndRevoke(t *testing.T) {
	d := NewDemoDirectory()
	_, token := d.Authenticate("admin", "admin")

	other := NewDemoDirectory()
	id, err := other.Resolve(token)
	require.NoError(t, err, "tokens resolve in any directory with the same users")
	assert.Equal(t, "Administrator", id.Name)

	d.Revoke(token)
	_, err = d.Resolve(token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	for _, bad := range []string{"", "garbage", "mock:alice", "mock:ghost:" + "00000000-0000-0000-0000-000000000000"} {
		_, err := d.Resolve(bad)
		assert.ErrorIs(t, err, ErrUnauthorized, bad)
	}
}

func TestMock_Provider(t *testing.T) {
	ctx := context.Background()
	tokens := &MemoryTokens{}
	m := NewMock(NewDemoDirectory(), tokens, 0)

	_, err := m.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err := m.Login(ctx, auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	require.NoError(t, err)
	require.True(t, res.Success)

	id, err := m.CurrentIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)

	require.NoError(t, m.Logout(ctx))
	token, _ := tokens.LoadAccessToken()
	assert.Empty(t, token)
	_, err = m.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// lockableTokens fails to load while locked, like a keyring that is not unlocked.
type lockableTokens struct {
	MemoryTokens
	locked bool
}

func (l *lockableTokens) LoadAccessToken() (string, error) {
	if l.locked {
		return "", errors.New("keyring locked")
	}
	return l.MemoryTokens.LoadAccessToken()
}

func TestMock_LogoutClearsTokenWhenLoadFails(t *testing.T) {
	ctx := context.Background()
	tokens := &lockableTokens{}
	m := NewMock(NewDemoDirectory(), tokens, 0)
	store := auth.NewStore()
	c := auth.NewController(store, m, nil, auth.DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := c.Login(ctx, auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	require.NoError(t, err)

	tokens.locked = true
	assert.Error(t, m.Logout(ctx))
	tokens.locked = false

	token, err := tokens.LoadAccessToken()
	require.NoError(t, err)
	assert.Empty(t, token, "the stored token is dropped even though it could not be read")

	_, err = m.CurrentIdentity(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	tokens.locked = true
	c.Logout(ctx)
	tokens.locked = false
	assert.False(t, c.CheckSession(ctx), "a logged-out session is not restored")
}

func TestDirectory_Register(t *testing.T) {
	d := NewDemoDirectory()

	tests := []struct {
		name     string
		reg      Registration
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{name: "valid", reg: Registration{Username: " carol ", Name: "Carol White", Email: "Carol@Example.com", Password: "secret1"}},
		{name: "username taken", reg: Registration{Username: "BOB", Name: "Bob Two", Email: "bob2@example.com", Password: "secret1"}, wantKind: apperrors.AlreadyExists, wantMsg: MsgUsernameTaken},
		{name: "email taken", reg: Registration{Username: "bobby", Name: "Bob Two", Email: "bob@example.com", Password: "secret1"}, wantKind: apperrors.AlreadyExists, wantMsg: MsgEmailTaken},
		{name: "missing username", reg: Registration{Name: "X", Email: "x@example.com", Password: "secret1"}, wantKind: apperrors.ValidationError, wantMsg: MsgUsernameRequired},
		{name: "short username", reg: Registration{Username: "ab", Name: "X", Email: "x@example.com", Password: "secret1"}, wantKind: apperrors.ValidationError, wantMsg: MsgUsernameShort},
		{name: "separator in username", reg: Registration{Username: "a:b:c", Name: "X", Email: "x@example.com", Password: "secret1"}, wantKind: apperrors.ValidationError, wantMsg: MsgUsernameChars},
		{name: "missing name", reg: Registration{Username: "xavier", Email: "x@example.com", Password: "secret1"}, wantKind: apperrors.ValidationError, wantMsg: MsgNameRequired},
		{name: "short password", reg: Registration{Username: "xavier", Name: "X", Email: "x@example.com", Password: "12345"}, wantKind: apperrors.ValidationError, wantMsg: MsgPasswordShort},
		{name: "bad email", reg: Registration{Username: "xavier", Name: "X", Email: "Xavier <x@example.com>", Password: "secret1"}, wantKind: apperrors.ValidationError, wantMsg: MsgEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := d.Register(tt.reg)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
				assert.Equal(t, tt.wantMsg, apperrors.MessageOf(err))
				assert.Nil(t, id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "4", id.ID)
			assert.Equal(t, "carol", id.Username)
			assert.Equal(t, "carol@example.com", id.Email)
		})
	}

	res, token := d.Authenticate("carol", "secret1")
	require.True(t, res.Success)
	id, err := d.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "Carol White", id.Name)
}

func TestMock_Register(t *testing.T) {
	ctx := context.Background()
	tokens := &MemoryTokens{}
	m := NewMock(NewDemoDirectory(), tokens, 0)

	id, err := m.Register(ctx, Registration{Username: "carol", Name: "Carol White", Email: "carol@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "carol", id.Username)

	token, _ := tokens.LoadAccessToken()
	assert.Empty(t, token, "registering does not sign in")

	_, err = m.Register(ctx, Registration{Username: "carol", Name: "C", Email: "c2@example.com", Password: "secret1"})
	assert.Equal(t, apperrors.AlreadyExists, apperrors.KindOf(err))
}

func TestMock_LatencyHonorsContext(t *testing.T) {
	m := NewMock(NewDemoDirectory(), nil, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := m.Login(ctx, auth.Credentials{Identifier: "alice", Secret: "wonderland"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFindToken(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "nested data", body: map[string]any{"success": true, "data": map[string]any{"token": "abc"}}, want: "abc"},
		{name: "access_token", body: map[string]any{"access_token": "xyz"}, want: "xyz"},
		{name: "authorization", body: map[string]any{"authorization": "Bearer t1"}, want: "t1"},
		{name: "none", body: map[string]any{"user": map[string]any{"name": "A"}}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findToken(tt.body))
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	assert.Equal(t, "tok", parseBearerToken("Bearer tok"))
	assert.Equal(t, "tok", parseBearerToken("bearer   tok"))
	assert.Equal(t, "", parseBearerToken("Basic abc"))
	assert.Equal(t, "", parseBearerToken("Bearer"))
}
