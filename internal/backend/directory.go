// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"taskboard/cli/internal/auth"
	apperrors "taskboard/cli/internal/errors"
)

// tokenPrefix marks tokens issued by a Directory.
const tokenPrefix = "mock:"

// User is a Directory account.
type User struct {
	auth.Identity
	Password string
}

// DemoUsers are the accounts a default Directory knows.
func DemoUsers() []User {
	return []User{
		{Identity: auth.Identity{ID: "1", Username: "alice", Name: "Alice Johnson", Email: "alice@example.com"}, Password: "wonderland"},
		{Identity: auth.Identity{ID: "2", Username: "bob", Name: "Bob Smith", Email: "bob@example.com"}, Password: "builder"},
		{Identity: auth.Identity{ID: "3", Username: "admin", Name: "Administrator", Email: "admin@example.com"}, Password: "admin"},
	}
}

// Directory is a small identity service: it checks passwords, issues opaque tokens,
// resolves them back to users and throttles login attempts per identifier.
// Tokens carry the username, so any Directory with the same users resolves them.
type Directory struct {
	mu       sync.Mutex
	users    map[string]User
	revoked  map[string]struct{}
	limiters map[string]*rate.Limiter
	nextID   int

	limit rate.Limit
	burst int
}

// NewDirectory returns a directory of users allowing burst attempts per identifier,
// refilled one every interval.
func NewDirectory(users []User, interval time.Duration, burst int) *Directory {
	d := &Directory{
		users:    make(map[string]User, len(users)),
		revoked:  map[string]struct{}{},
		limiters: map[string]*rate.Limiter{},
		limit:    rate.Every(interval),
		burst:    burst,
	}
	for _, u := range users {
		d.users[strings.ToLower(u.Username)] = u
		if n, err := strconv.Atoi(u.ID); err == nil && n > d.nextID {
			d.nextID = n
		}
	}
	return d
}

// NewDemoDirectory returns the demo users with five attempts per identifier and one
// more every twelve seconds.
func NewDemoDirectory() *Directory {
	return NewDirectory(DemoUsers(), 12*time.Second, 5)
}

// Authenticate checks a login attempt. On success it returns the token to hand out.
func (d *Directory) Authenticate(identifier, secret string) (auth.LoginResult, string) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" || secret == "" {
		return auth.LoginResult{Code: auth.CodeValidationError, Message: "Username and password are required."}, ""
	}
	if len(identifier) < 3 {
		return auth.LoginResult{Code: auth.CodeValidationError, Message: "Username must be at least 3 characters."}, ""
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.limiterLocked(identifier).Allow() {
		return auth.LoginResult{Code: auth.CodeRateLimited, Message: "Too many login attempts."}, ""
	}

	u, ok := d.users[identifier]
	if !ok || u.Password != secret {
		return auth.LoginResult{Code: auth.CodeInvalidCredentials, Message: "Invalid username or password."}, ""
	}

	id := u.Identity
	return auth.LoginResult{Success: true, Identity: &id, Message: "Login successful"}, tokenPrefix + u.Username + ":" + uuid.NewString()
}

// Register adds an account. Usernames and emails are unique case-insensitively.
func (d *Directory) Register(reg Registration) (*auth.Identity, error) {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	key := strings.ToLower(reg.Username)
	if _, taken := d.users[key]; taken {
		return nil, apperrors.New(apperrors.AlreadyExists, MsgUsernameTaken)
	}
	for _, u := range d.users {
		if strings.EqualFold(u.Email, reg.Email) {
			return nil, apperrors.New(apperrors.AlreadyExists, MsgEmailTaken)
		}
	}

	d.nextID++
	u := User{
		Identity: auth.Identity{ID: strconv.Itoa(d.nextID), Username: reg.Username, Name: reg.Name, Email: reg.Email},
		Password: reg.Password,
	}
	d.users[key] = u
	id := u.Identity
	return &id, nil
}

// Resolve returns the user a token was issued to.
func (d *Directory) Resolve(token string) (*auth.Identity, error) {
	rest, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok {
		return nil, ErrUnauthorized
	}
	username, nonce, ok := strings.Cut(rest, ":")
	if !ok {
		return nil, ErrUnauthorized
	}
	if _, err := uuid.Parse(nonce); err != nil {
		return nil, ErrUnauthorized
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, gone := d.revoked[token]; gone {
		return nil, ErrUnauthorized
	}
	u, ok := d.users[strings.ToLower(username)]
	if !ok {
		return nil, ErrUnauthorized
	}
	id := u.Identity
	return &id, nil
}

// Revoke makes token unusable.
func (d *Directory) Revoke(token string) {
	if token == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = struct{}{}
}

func (d *Directory) limiterLocked(identifier string) *rate.Limiter {
	l, ok := d.limiters[identifier]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.limiters[identifier] = l
	}
	return l
}
