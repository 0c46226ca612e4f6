// Package session tracks authentication state for one client instance.
//
// The machine has three reachable states. Transitions happen only through
// the methods below; the transport's 401 observer funnels into Revoke so
// the teardown rule lives in exactly one place.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/samthedataman/resumably/internal/types"
)

// State enumerates the authentication states.
type State int

const (
	Unauthenticated State = iota
	PendingSecondFactor
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case PendingSecondFactor:
		return "pending-second-factor"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Machine is the session state machine. A non-empty token implies either a
// completed authentication or a currently pending challenge, never an
// Unauthenticated state holding a trusted user snapshot.
type Machine struct {
	mu        sync.Mutex
	state     State
	token     string
	expiresAt time.Time
	user      *types.User

	// Credentials entered on the password path, retained while a
	// second-factor challenge is pending so the answer can be resubmitted
	// without re-asking the user.
	pendingEmail    string
	pendingPassword string

	listeners []func(State)
}

// New returns a machine in the Unauthenticated state.
func New() *Machine { return &Machine{state: Unauthenticated} }

// State reports the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the session token if one is held and not past its expiry.
func (m *Machine) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", false
	}
	if !m.expiresAt.IsZero() && time.Now().After(m.expiresAt) {
		return "", false
	}
	return m.token, true
}

// User returns the cached authenticated-user snapshot, if any.
func (m *Machine) User() *types.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// SetUser caches the authenticated-user snapshot.
func (m *Machine) SetUser(u *types.User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

// BeginChallenge records that the backend demanded a second factor for the
// given credentials and moves to PendingSecondFactor.
func (m *Machine) BeginChallenge(email, password string) {
	m.mu.Lock()
	m.state = PendingSecondFactor
	m.pendingEmail = email
	m.pendingPassword = password
	st := m.state
	ls := append([]func(State){}, m.listeners...)
	m.mu.Unlock()
	notify(ls, st)
}

// PendingCredentials returns the credentials held for a pending challenge.
func (m *Machine) PendingCredentials() (email, password string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != PendingSecondFactor {
		return "", "", false
	}
	return m.pendingEmail, m.pendingPassword, true
}

// CancelChallenge abandons a pending challenge. The entered email is kept
// so the login form can be re-populated; the password is not.
func (m *Machine) CancelChallenge() {
	m.mu.Lock()
	if m.state != PendingSecondFactor {
		m.mu.Unlock()
		return
	}
	m.state = Unauthenticated
	m.pendingPassword = ""
	st := m.state
	ls := append([]func(State){}, m.listeners...)
	m.mu.Unlock()
	notify(ls, st)
}

// LastEmail returns the most recently entered login email.
func (m *Machine) LastEmail() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingEmail
}

// CompleteLogin stores the issued token and moves to Authenticated,
// clearing any pending challenge.
func (m *Machine) CompleteLogin(token string) {
	m.mu.Lock()
	m.state = Authenticated
	m.token = token
	m.expiresAt = tokenExpiry(token)
	m.pendingPassword = ""
	st := m.state
	ls := append([]func(State){}, m.listeners...)
	m.mu.Unlock()
	notify(ls, st)
}

// Logout clears the token and user snapshot from any state.
func (m *Machine) Logout() { m.teardown() }

// Revoke is the forced teardown triggered by an unauthorized reply from
// any call, regardless of which component made it.
func (m *Machine) Revoke() { m.teardown() }

func (m *Machine) teardown() {
	m.mu.Lock()
	m.state = Unauthenticated
	m.token = ""
	m.expiresAt = time.Time{}
	m.user = nil
	m.pendingPassword = ""
	st := m.state
	ls := append([]func(State){}, m.listeners...)
	m.mu.Unlock()
	notify(ls, st)
}

// Subscribe registers a callback invoked after every state transition.
func (m *Machine) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func notify(listeners []func(State), st State) {
	for _, fn := range listeners {
		fn(st)
	}
}

// tokenExpiry reads the exp claim without verifying the signature; only
// the backend can verify, the client just avoids sending dead tokens.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
