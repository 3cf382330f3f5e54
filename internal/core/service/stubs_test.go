package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// stubIdentityStore is a map-backed IdentityStore with per-operation error
// injection and call recording.
type stubIdentityStore struct {
	mu    sync.Mutex
	users map[string]*domain.Identity

	resolveFn func(ctx context.Context, token string) (*domain.Identity, error)
	onCreate  func(id *domain.Identity)

	createErr error
	updateErr error
	deleteErr error
	linkErr   error

	created []ports.CreateIdentityInput
	updates map[string]ports.UpdateIdentityInput
	deleted []string

	nextID int
}

func newStubIdentityStore() *stubIdentityStore {
	return &stubIdentityStore{
		users:   make(map[string]*domain.Identity),
		updates: make(map[string]ports.UpdateIdentityInput),
	}
}

func (s *stubIdentityStore) ResolveToken(ctx context.Context, token string) (*domain.Identity, error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, token)
	}
	return nil, domain.ErrInvalidToken
}

func (s *stubIdentityStore) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubIdentityStore) Create(_ context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}

	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == in.Email {
			s.mu.Unlock()
			return nil, domain.ErrUserExists
		}
	}
	s.nextID++
	identity := &domain.Identity{ID: fmt.Sprintf("id-%d", s.nextID), Email: in.Email}
	s.users[identity.ID] = identity
	s.created = append(s.created, in)
	s.mu.Unlock()

	if s.onCreate != nil {
		s.onCreate(identity)
	}
	return identity, nil
}

func (s *stubIdentityStore) Update(_ context.Context, id string, in ports.UpdateIdentityInput) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	s.updates[id] = in
	return nil
}

func (s *stubIdentityStore) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubIdentityStore) GenerateRecoveryLink(_ context.Context, email, redirectTo string) (string, error) {
	if s.linkErr != nil {
		return "", s.linkErr
	}
	return redirectTo + "?token_hash=stub&type=recovery", nil
}

// stubProfileStore is a map-backed ProfileStore with error injection.
type stubProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile

	findErr   error
	listErr   error
	insertErr error
	updateErr error
	deleteErr error

	updateCalls int
}

func newStubProfileStore() *stubProfileStore {
	return &stubProfileStore{profiles: make(map[string]*domain.Profile)}
}

func (s *stubProfileStore) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneProfile(p), nil
}

func (s *stubProfileStore) FindByEmail(_ context.Context, email string) (*domain.Profile, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Email == email {
			return cloneProfile(p), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubProfileStore) List(_ context.Context, filter ports.ListProfilesFilter) ([]*domain.Profile, int64, error) {
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Profile
	for _, p := range s.profiles {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.Email, filter.Search) {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	return out, int64(len(out)), nil
}

func (s *stubProfileStore) Insert(_ context.Context, p *domain.Profile) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; ok {
		return domain.ErrUserExists
	}
	s.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (s *stubProfileStore) Update(_ context.Context, id string, upd ports.ProfileUpdate) (*domain.Profile, error) {
	s.mu.Lock()
	s.updateCalls++
	s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Email != nil {
		p.Email = *upd.Email
	}
	if upd.DisplayName != nil {
		p.DisplayName = *upd.DisplayName
	}
	if upd.Username != nil {
		p.Username = *upd.Username
	}
	if upd.Role != nil {
		p.Role = *upd.Role
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	return cloneProfile(p), nil
}

func (s *stubProfileStore) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.profiles, id)
	return nil
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	c := *p
	return &c
}
