package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AdminUserService performs privileged user mutations spanning the identity
// store and the profile store. The two systems are not transacted together,
// so every mutation is ordered so that a partial failure either compensates
// backward or leaves the application side already consistent:
//
//   - Create commits the identity first (the externally addressable resource)
//     and deletes it again if the profile write fails.
//   - Delete removes the profile first so authorization stops immediately,
//     even if the external credential lingers.
type AdminUserService struct {
	identities ports.IdentityStore
	profiles   ports.ProfileStore
	resetURL   string
	log        zerolog.Logger
}

func NewAdminUserService(identities ports.IdentityStore, profiles ports.ProfileStore, resetURL string, log zerolog.Logger) *AdminUserService {
	return &AdminUserService{
		identities: identities,
		profiles:   profiles,
		resetURL:   resetURL,
		log:        log,
	}
}

// CreateUser mints an identity and its matching profile. The hosted service
// may run a provisioning trigger that inserts a minimal profile row before
// the explicit insert lands; an existing row for the new identity id is
// therefore reconciled (explicit role and username win) instead of being
// treated as a duplicate.
func (s *AdminUserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.Profile, error) {
	if in.Email == "" || in.Password == "" || in.DisplayName == "" {
		return nil, fmt.Errorf("%w: email, password and display name are required", domain.ErrValidation)
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}

	username := in.Username
	if username == "" {
		username = localPart(in.Email)
	}

	var (
		identity *domain.Identity
		profile  *domain.Profile
	)

	err := runSaga(
		func() error {
			created, err := s.identities.Create(ctx, ports.CreateIdentityInput{
				Email:        in.Email,
				Password:     in.Password,
				EmailConfirm: true,
				Metadata: map[string]string{
					"display_name": in.DisplayName,
					"username":     username,
					"role":         string(role),
				},
			})
			if err != nil {
				if errors.Is(err, domain.ErrUserExists) {
					return domain.ErrUserExists
				}
				return fmt.Errorf("%w: %v", domain.ErrIdentityCreateFailed, err)
			}
			identity = created
			return nil
		},
		func() error {
			var err error
			profile, err = s.ensureProfile(ctx, identity.ID, in.Email, in.DisplayName, username, role)
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrProfileCreateFailed, err)
			}
			return nil
		},
		func() error {
			return s.identities.Delete(ctx, identity.ID)
		},
	)
	if err != nil {
		var compErr *domain.CompensationError
		if errors.As(err, &compErr) {
			s.log.Error().Err(compErr.CompErr).Str("identity_id", identity.ID).
				Msg("identity cleanup failed after profile create error; stores are inconsistent")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", profile.ID).Str("role", string(profile.Role)).Msg("user created")
	return profile, nil
}

// ensureProfile inserts the profile row, or reconciles a trigger-created one.
func (s *AdminUserService) ensureProfile(ctx context.Context, id, email, displayName, username string, role domain.Role) (*domain.Profile, error) {
	existing, err := s.profiles.FindByID(ctx, id)
	if err == nil && existing != nil {
		if existing.Role == role && existing.Username == username {
			return existing, nil
		}
		updated, updErr := s.profiles.Update(ctx, id, ports.ProfileUpdate{
			Role:     &role,
			Username: &username,
		})
		if updErr != nil {
			// The account exists and works; the divergence is logged, not fatal.
			s.log.Warn().Err(updErr).Str("user_id", id).Msg("failed to reconcile trigger-created profile")
			return existing, nil
		}
		s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("reconciled trigger-created profile")
		return updated, nil
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		Username:    username,
		Role:        role,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.profiles.Insert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateUser applies the profile change first; a failure there aborts before
// the identity store is touched. A requested email change is then pushed to
// the identity store — its failure surfaces as a warning, never an error,
// because the profile is the source of truth for authorization.
func (s *AdminUserService) UpdateUser(ctx context.Context, id string, in ports.UpdateUserInput) (*ports.UpdateUserResult, error) {
	if in.Role != nil && !in.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, *in.Role)
	}

	profile, err := s.profiles.Update(ctx, id, ports.ProfileUpdate{
		Email:       in.Email,
		DisplayName: in.DisplayName,
		Role:        in.Role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileUpdateFailed, err)
	}

	result := &ports.UpdateUserResult{Profile: profile}

	if in.Email != nil {
		if err := s.identities.Update(ctx, id, ports.UpdateIdentityInput{Email: in.Email}); err != nil {
			s.log.Warn().Err(err).Str("user_id", id).Msg("identity email update failed after profile update")
			result.Warning = "user record updated, but the sign-in email could not be changed and may be stale"
		}
	}

	s.log.Info().Str("user_id", id).Msg("user updated")
	return result, nil
}

// DeleteUser removes the profile first, then the identity. Once the profile
// is gone the application stops granting authorization, so an identity-delete
// failure downgrades to a partial-success warning rather than an error.
func (s *AdminUserService) DeleteUser(ctx context.Context, id string) (*ports.DeleteUserResult, error) {
	if err := s.profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrProfileDeleteFailed, err)
	}

	result := &ports.DeleteUserResult{}
	if err := s.identities.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("identity delete failed after profile delete")
		result.Warning = "account deactivated in-app, but the sign-in credential could not be removed and may still authenticate until cleaned up"
	} else {
		s.log.Info().Str("user_id", id).Msg("user deleted")
	}
	return result, nil
}

func (s *AdminUserService) GetUser(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

func (s *AdminUserService) ListUsers(ctx context.Context, filter ports.ListProfilesFilter) (*ports.ListUsersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.profiles.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListUsersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// GenerateResetLink produces a password-recovery link for an existing user.
func (s *AdminUserService) GenerateResetLink(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if identity == nil {
		return "", domain.ErrUserNotFound
	}

	link, err := s.identities.GenerateRecoveryLink(ctx, email, s.resetURL)
	if err != nil {
		return "", fmt.Errorf("generate reset link: %w", err)
	}
	return link, nil
}

// ResetPassword sets a new password directly on the identity record.
func (s *AdminUserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return fmt.Errorf("%w: email and new password are required", domain.ErrValidation)
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if identity == nil {
		return domain.ErrUserNotFound
	}

	if err := s.identities.Update(ctx, identity.ID, ports.UpdateIdentityInput{Password: &newPassword}); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	s.log.Info().Str("user_id", identity.ID).Msg("password reset")
	return nil
}

// localPart returns everything before the '@' of an email address.
func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
