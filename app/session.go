package app

import (
	"context"
	"sync"
	"time"

	"github.com/blogmates/blogmates-tui/domain"
)

// AuthState is the session's position in its lifecycle.
type AuthState int

const (
	StateUnknown AuthState = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionInfo is a read-only snapshot handed to views.
type SessionInfo struct {
	State     AuthState
	User      domain.User
	HasUser   bool
	ExpiresAt time.Time // Zero when the access token carried no usable claims.
}

// Session is the process-wide authentication record. It has a single writer
// (the auth flows below and the client's auth-expiry hook) and many readers.
type Session struct {
	mu        sync.RWMutex
	state     AuthState
	user      domain.User
	hasUser   bool
	expiresAt time.Time
}

// NewSession starts in the unknown state, before the silent-refresh attempt.
func NewSession() *Session {
	return &Session{state: StateUnknown}
}

// Snapshot returns the current session state for reading.
func (s *Session) Snapshot() SessionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionInfo{State: s.state, User: s.user, HasUser: s.hasUser, ExpiresAt: s.expiresAt}
}

// SetAuthenticated marks the session authenticated, recording the access
// token expiry when known.
func (s *Session) SetAuthenticated(expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.expiresAt = expiresAt
}

// SetUser caches the current-user record. Only meaningful while
// authenticated.
func (s *Session) SetUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.hasUser = true
}

// Clear demotes the session to unauthenticated and drops the cached user.
// Used on logout and on unrecoverable refresh failure.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.user = domain.User{}
	s.hasUser = false
	s.expiresAt = time.Time{}
}

// Bootstrap runs the startup transition: attempt a silent refresh, and if it
// succeeds fetch the current-user record. A user-fetch failure while
// authenticated demotes back to unauthenticated.
func (s *Session) Bootstrap(ctx context.Context, auth AuthService, profiles ProfileService) SessionInfo {
	if err := auth.Refresh(ctx); err != nil {
		s.Clear()
		return s.Snapshot()
	}
	s.SetAuthenticated(time.Time{})

	user, err := profiles.CurrentUser(ctx)
	if err != nil {
		s.Clear()
		return s.Snapshot()
	}
	s.SetUser(user)
	return s.Snapshot()
}
