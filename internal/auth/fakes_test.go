package auth

import (
	"context"
	"sync"
	"sync/atomic"
)

type fakeProvider struct {
	loginResult LoginResult
	loginErr    error
	loginPanic  any
	logoutErr   error
	current     *Identity
	currentErr  error

	// block, when set, holds CurrentIdentity until it is closed.
	block chan struct{}

	loginCalls   atomic.Int32
	logoutCalls  atomic.Int32
	currentCalls atomic.Int32
}

func (p *fakeProvider) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	p.loginCalls.Add(1)
	if p.loginPanic != nil {
		panic(p.loginPanic)
	}
	return p.loginResult, p.loginErr
}

func (p *fakeProvider) Logout(ctx context.Context) error {
	p.logoutCalls.Add(1)
	return p.logoutErr
}

func (p *fakeProvider) CurrentIdentity(ctx context.Context) (*Identity, error) {
	p.currentCalls.Add(1)
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return p.current, p.currentErr
}

type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Schedule(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Scheduled() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}
