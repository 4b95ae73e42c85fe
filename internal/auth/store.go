package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound means the session was signed out, revoked or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore tracks the signed-in sessions of the server. A session
// leaves the store when it signs out, is revoked or expires.
type SessionStore struct {
	provider CredentialProvider
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns a store whose sessions check credentials with p
// and stay valid for ttl (zero means until sign-out).
func NewSessionStore(p CredentialProvider, ttl time.Duration) *SessionStore {
	return &SessionStore{
		provider: p,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// SignIn opens a new session. The session is stored only on success.
func (st *SessionStore) SignIn(ctx context.Context, email, password string) (*Session, SignInResult) {
	s := NewSession(st.provider)
	s.now = st.now

	res := s.SignIn(ctx, email, password)
	if !res.Success {
		return nil, res
	}
	if st.ttl > 0 {
		s.expireAt(s.SignedInAt().Add(st.ttl))
	}

	id := s.ID()
	s.OnAuthStateChange(func(u *User) {
		if u == nil {
			st.remove(id)
		}
	})

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return s, res
}

// Get returns the live session with the given id.
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired() {
		st.remove(id)
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Revoke signs the session out. It reports whether the session existed.
func (st *SessionStore) Revoke(id string) bool {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return false
	}
	s.SignOut()
	st.remove(id)
	return true
}

// Sweep drops expired sessions and returns how many were removed.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.expired() {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included until
// the next Sweep.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *SessionStore) remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
