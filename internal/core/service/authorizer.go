package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// RoleAuthorizer gates operations on the profile role resolved from the
// profile store. Role is the authoritative field; nothing here consults a
// derived is_admin flag.
type RoleAuthorizer struct {
	profiles ports.ProfileStore
	log      zerolog.Logger
}

func NewRoleAuthorizer(profiles ports.ProfileStore, log zerolog.Logger) *RoleAuthorizer {
	return &RoleAuthorizer{profiles: profiles, log: log}
}

// Authorize returns the caller's profile when its role is in requiredRoles.
// Deactivated accounts are treated as forbidden regardless of role.
func (a *RoleAuthorizer) Authorize(ctx context.Context, identityID string, requiredRoles ...domain.Role) (*domain.Profile, error) {
	profile, err := a.profiles.FindByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		a.log.Error().Err(err).Str("identity_id", identityID).Msg("profile lookup failed")
		return nil, domain.ErrLookupFailed
	}

	if !profile.IsActive {
		return nil, domain.ErrForbidden
	}

	for _, r := range requiredRoles {
		if profile.Role == r {
			return profile, nil
		}
	}
	return nil, domain.ErrForbidden
}
