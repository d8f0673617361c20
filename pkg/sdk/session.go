package sdk

import (
	"fmt"
	"sync"
)

// Session is the persisted (token, principal) pair. The two are created and
// destroyed together; there is never a token without its principal.
type Session struct {
	Token string    `json:"token"`
	User  Principal `json:"user"`
}

// SessionStore persists the active session between runs. Load returns
// (nil, nil) when nothing is stored.
type SessionStore interface {
	Save(*Session) error
	Load() (*Session, error)
	Clear() error
}

// SessionManager owns the active session and is the single source of truth
// for who is logged in. Other components read it but never mutate the pair
// directly; replacement happens through the client's Login and Impersonate
// operations, destruction through Logout or a 401 seen by the gateway.
type SessionManager struct {
	mu      sync.Mutex
	store   SessionStore
	current *Session

	invalidated []func()
}

// NewSessionManager rehydrates from the store. A missing, unreadable or
// structurally invalid record means logged out; no backend validation
// happens here, so a stale token is only discovered on the first 401.
func NewSessionManager(store SessionStore) *SessionManager {
	m := &SessionManager{store: store}
	if store == nil {
		return m
	}
	s, err := store.Load()
	if err != nil || s == nil {
		return m
	}
	if s.Token == "" || !s.User.Role.Valid() {
		return m
	}
	m.current = s
	return m
}

// Token returns the bearer token of the active session, or "".
func (m *SessionManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// Principal returns a copy of the active principal, or nil when logged out.
func (m *SessionManager) Principal() *Principal {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	p := m.current.User
	return &p
}

// IsAuthenticated reports whether both token and principal are present.
func (m *SessionManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// Replace atomically installs a new session. The record is persisted before
// the in-memory swap; on a persistence failure the previous session stays
// active.
func (m *SessionManager) Replace(token string, user Principal) error {
	if token == "" {
		return fmt.Errorf("refusing to install a session without a token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := &Session{Token: token, User: user}
	if m.store != nil {
		if err := m.store.Save(next); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}
	m.current = next
	return nil
}

// Invalidate drops the session unconditionally and never fails. A store
// error is ignored: a failed delete must not keep a revoked identity live
// in memory.
func (m *SessionManager) Invalidate() {
	m.mu.Lock()
	m.current = nil
	store := m.store
	m.mu.Unlock()
	if store != nil {
		_ = store.Clear()
	}
}

// OnSessionInvalidated registers a hook fired when the gateway destroys the
// session after a 401. Hooks run outside the manager's lock.
func (m *SessionManager) OnSessionInvalidated(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, fn)
}

// expire implements forced logout: same destruction as Invalidate, then the
// registered hooks fire so the top level can route the user to login.
func (m *SessionManager) expire() {
	m.Invalidate()
	m.mu.Lock()
	hooks := make([]func(), len(m.invalidated))
	copy(hooks, m.invalidated)
	m.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}
