// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"sync"
	"sync/atomic"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	Identity      *Identity
	Loading       bool
	CheckInFlight bool
	LastError     string
}

// Authenticated reports whether the snapshot carries an identity.
func (s Snapshot) Authenticated() bool { return s.Identity != nil }

// Store is the shared session cell. Reads are public; writes go through the Controller.
type Store struct {
	mu        sync.RWMutex
	identity  *Identity
	loading   bool
	lastError string

	checkInFlight atomic.Bool

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// DefaultStore returns the process-wide session store.
func DefaultStore() *Store {
	defaultStoreOnce.Do(func() {
		defaultStore = NewStore()
	})
	return defaultStore
}

// NewStore returns an empty, unauthenticated store.
func NewStore() *Store {
	return &Store{subs: map[int]func(Snapshot){}}
}

// Snapshot returns a copy of the current state. The returned Identity is a copy too.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Loading:       s.loading,
		CheckInFlight: s.checkInFlight.Load(),
		LastError:     s.lastError,
	}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

// Subscribe registers fn to be called with a fresh snapshot after every change.
// Callbacks run synchronously on the writer's goroutine, outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// state is the mutable part handed to update callbacks.
type state struct {
	identity  *Identity
	loading   bool
	lastError string
}

func (s *Store) update(fn func(st *state)) {
	s.mu.Lock()
	st := state{identity: s.identity, loading: s.loading, lastError: s.lastError}
	fn(&st)
	s.identity, s.loading, s.lastError = st.identity, st.loading, st.lastError
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// beginCheck marks a session check as running. It returns false when one already is.
func (s *Store) beginCheck() bool {
	if !s.checkInFlight.CompareAndSwap(false, true) {
		return false
	}
	s.notify(s.Snapshot())
	return true
}

func (s *Store) endCheck() {
	s.checkInFlight.Store(false)
	s.notify(s.Snapshot())
}

func (s *Store) notify(snap Snapshot) {
	s.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
