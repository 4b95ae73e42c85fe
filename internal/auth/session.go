// Package auth gates access to the inventory: a CredentialProvider checks
// passwords, a Session holds the signed-in user and their permissions, and
// tokens reference sessions kept in a SessionStore.
package auth

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SignInResult reports the outcome of SignIn. Error carries the message
// shown to the user.
type SignInResult struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

// AuthStateListener receives the signed-in user, or nil after sign-out.
type AuthStateListener func(*User)

type listener struct {
	id int
	fn AuthStateListener
}

// Session is the auth state of one client. It is safe for concurrent use.
// Listeners run after the state change, in subscription order, without the
// session lock held.
type Session struct {
	provider CredentialProvider
	now      func() time.Time

	mu          sync.Mutex
	id          string
	user        *User
	permissions []Permission
	signedInAt  time.Time
	expiresAt   time.Time
	listeners   []listener
	nextID      int
}

// NewSession returns a signed-out session that checks credentials with p.
func NewSession(p CredentialProvider) *Session {
	return &Session{provider: p, now: time.Now}
}

// SignIn authenticates and, on success, replaces the current user.
func (s *Session) SignIn(ctx context.Context, email, password string) SignInResult {
	user, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return SignInResult{Error: signInMessage(err), Err: err}
	}

	s.mu.Lock()
	s.id = uuid.NewString()
	s.user = &user
	s.permissions = user.Role.Permissions()
	s.signedInAt = s.now()
	s.expiresAt = time.Time{}
	fns := s.snapshotLocked()
	s.mu.Unlock()

	notify(fns, &user)
	u := user
	return SignInResult{Success: true, User: &u}
}

// SignOut clears the user and permissions and notifies listeners with nil.
// Signing out a signed-out session does nothing.
func (s *Session) SignOut() {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.permissions = nil
	s.expiresAt = time.Time{}
	fns := s.snapshotLocked()
	s.mu.Unlock()

	notify(fns, nil)
}

// OnAuthStateChange registers cb and returns a function that removes it.
// The returned function may be called more than once.
func (s *Session) OnAuthStateChange(cb AuthStateListener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: cb})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

// IsAuthenticated reports whether a user is signed in and not expired.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

// HasPermission reports whether the signed-in user holds p.
func (s *Session) HasPermission(p Permission) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked() && slices.Contains(s.permissions, p)
}

// RequirePermission returns a *PermissionError unless HasPermission(p).
func (s *Session) RequirePermission(p Permission) error {
	if !s.HasPermission(p) {
		return &PermissionError{Permission: p}
	}
	return nil
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return nil
	}
	u := *s.user
	return &u
}

// Permissions returns the signed-in user's permissions.
func (s *Session) Permissions() []Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return nil
	}
	return slices.Clone(s.permissions)
}

// ID identifies the current sign-in. It changes on every successful SignIn.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// SignedInAt returns when the current user signed in.
func (s *Session) SignedInAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signedInAt
}

func (s *Session) expireAt(t time.Time) {
	s.mu.Lock()
	s.expiresAt = t
	s.mu.Unlock()
}

func (s *Session) expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user == nil || s.pastExpiryLocked()
}

func (s *Session) activeLocked() bool {
	return s.user != nil && !s.pastExpiryLocked()
}

func (s *Session) pastExpiryLocked() bool {
	return !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt)
}

func (s *Session) snapshotLocked() []AuthStateListener {
	fns := make([]AuthStateListener, len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	return fns
}

func notify(fns []AuthStateListener, u *User) {
	for _, fn := range fns {
		if u == nil {
			fn(nil)
			continue
		}
		cp := *u
		fn(&cp)
	}
}
