// Package client is the Go rendering of the SPA's auth layer: a single-writer
// session manager, the route guard that mirrors the server-side gate, and the
// advisory persisted client state. Nothing in this package is a security
// boundary — the server-side authorization gate is the enforcement point,
// because everything here is attacker-controllable.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// Authenticator is the slice of the identity service the session layer needs.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (token string, identity *domain.Identity, err error)
	ResolveToken(ctx context.Context, token string) (*domain.Identity, error)
}

// ProfileReader fetches the application profile for a signed-in identity.
type ProfileReader interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
}

// Session is an immutable snapshot of the client's auth state.
type Session struct {
	Identity        *domain.Identity
	Profile         *domain.Profile
	IsAuthenticated bool
	IsAdmin         bool
}

// Manager owns the session state. All mutations go through the named
// transitions SignIn, SignOut and Refresh so the state machine stays
// auditable; concurrent transitions are serialized and last write wins,
// which is acceptable because each transition is idempotent with respect
// to the final state.
type Manager struct {
	auth     Authenticator
	profiles ProfileReader
	storage  *Storage
	log      zerolog.Logger

	mu      sync.Mutex
	session Session
}

func NewManager(auth Authenticator, profiles ProfileReader, storage *Storage, log zerolog.Logger) *Manager {
	return &Manager{
		auth:     auth,
		profiles: profiles,
		storage:  storage,
		log:      log,
	}
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// SignIn authenticates with the identity service and loads the profile.
// A profile fetch failure leaves the session authenticated but without role
// information, matching the server-side rule that authorization is decided
// there anyway.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	token, identity, err := m.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	profile := m.loadProfile(ctx, identity.ID)

	m.mu.Lock()
	m.session = sessionFor(identity, profile)
	m.mu.Unlock()

	m.storage.Set(KeySessionToken, token)
	m.persistRole(profile)
	return nil
}

// SignOut clears the session and the persisted token.
func (m *Manager) SignOut(_ context.Context) {
	m.mu.Lock()
	m.session = Session{}
	m.mu.Unlock()

	m.storage.Remove(KeySessionToken)
	m.storage.Remove(KeyUserRole)
	m.storage.Set(KeyAdminAccessGranted, "false")
}

// Refresh rehydrates the session from the persisted token. Called at startup
// and on tab-visibility regain. An invalid or missing token resolves to a
// signed-out session rather than an error; only transient failures surface,
// leaving the previous session state untouched.
func (m *Manager) Refresh(ctx context.Context) error {
	token := m.storage.Get(KeySessionToken)
	if token == "" {
		m.mu.Lock()
		m.session = Session{}
		m.mu.Unlock()
		return nil
	}

	identity, err := m.auth.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrServiceUnavailable) || errors.Is(err, domain.ErrVerificationFailed) {
			return fmt.Errorf("refresh session: %w", err)
		}
		m.mu.Lock()
		m.session = Session{}
		m.mu.Unlock()
		m.storage.Remove(KeySessionToken)
		m.log.Debug().Msg("persisted session token no longer valid")
		return nil
	}

	profile := m.loadProfile(ctx, identity.ID)

	m.mu.Lock()
	m.session = sessionFor(identity, profile)
	m.mu.Unlock()

	m.persistRole(profile)
	return nil
}

func (m *Manager) loadProfile(ctx context.Context, id string) *domain.Profile {
	profile, err := m.profiles.FindByID(ctx, id)
	if err != nil {
		m.log.Warn().Err(err).Msg("profile fetch failed during session load")
		return nil
	}
	return profile
}

func (m *Manager) persistRole(profile *domain.Profile) {
	if profile == nil {
		m.storage.Remove(KeyUserRole)
		return
	}
	m.storage.Set(KeyUserRole, string(profile.Role))
}

func sessionFor(identity *domain.Identity, profile *domain.Profile) Session {
	return Session{
		Identity:        identity,
		Profile:         profile,
		IsAuthenticated: true,
		IsAdmin:         profile != nil && profile.Role == domain.RoleAdmin,
	}
}
