package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// State of the cached session.
type State int

const (
	// StateUnknown holds until the cached token has been inspected once.
	StateUnknown State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Decision for a navigation attempt.
type Decision int

const (
	// DecisionWait: session state not resolved yet, render nothing.
	DecisionWait Decision = iota
	DecisionProceed
	DecisionRedirectLogin
)

// Identity is what the client knows about the session holder. It comes
// from the token's claims without signature verification: the client has
// no secret, and the server re-verifies every request anyway.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Guard resolves cached session state once and answers navigation checks.
// Resolution is one-shot; Login/Logout move the state afterwards.
type Guard struct {
	store TokenStore
	now   func() time.Time

	mu       sync.RWMutex
	resolved bool
	state    State
	identity *Identity
}

func NewGuard(store TokenStore) *Guard {
	return &Guard{store: store, now: time.Now, state: StateUnknown}
}

// Resolve inspects the cached token and settles the Unknown state. Calling
// it again is a no-op and returns the settled state.
func (g *Guard) Resolve() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.resolved {
		return g.state
	}
	g.resolved = true

	token, err := g.store.Load()
	if err != nil || token == "" {
		g.state = StateUnauthenticated
		return g.state
	}

	identity, ok := g.inspect(token)
	if !ok {
		// Stale or mangled token: drop it so the next run resolves fast.
		_ = g.store.Clear()
		g.state = StateUnauthenticated
		return g.state
	}

	g.identity = identity
	g.state = StateAuthenticated
	return g.state
}

// Check gates navigation to a view. Ungated views always proceed.
func (g *Guard) Check(gated bool) Decision {
	if !gated {
		return DecisionProceed
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	switch g.state {
	case StateAuthenticated:
		return DecisionProceed
	case StateUnauthenticated:
		return DecisionRedirectLogin
	default:
		return DecisionWait
	}
}

// Identity returns the session holder when authenticated.
func (g *Guard) Identity() (*Identity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.state != StateAuthenticated || g.identity == nil {
		return nil, false
	}
	id := *g.identity
	return &id, true
}

// Login stores a freshly issued token and moves to Authenticated.
func (g *Guard) Login(token string) error {
	if err := g.store.Save(token); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolved = true
	if identity, ok := g.inspect(token); ok {
		g.identity = identity
		g.state = StateAuthenticated
	} else {
		g.identity = nil
		g.state = StateUnauthenticated
	}
	return nil
}

// Logout clears the cached token and moves to Unauthenticated.
func (g *Guard) Logout() error {
	if err := g.store.Clear(); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolved = true
	g.identity = nil
	g.state = StateUnauthenticated
	return nil
}

// inspect reads the token's claims and expiry without verifying the
// signature.
func (g *Guard) inspect(token string) (*Identity, bool) {
	type sessionClaims struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	claims := &sessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(g.now()) {
		return nil, false
	}
	if claims.UserID == "" {
		return nil, false
	}
	return &Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, true
}
