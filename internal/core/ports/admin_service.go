package ports

import (
	"context"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// CreateUserInput carries the admin "create user" form.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Username    string      // defaults to the local part of Email
	Role        domain.Role // defaults to RoleUser
}

// UpdateUserInput holds the admin-editable user fields. Nil means unchanged.
type UpdateUserInput struct {
	Email       *string
	DisplayName *string
	Role        *domain.Role
}

// UpdateUserResult is returned by UpdateUser. Warning is non-empty when the
// profile change committed but the identity-side email update failed — the
// profile is the source of truth, so this is a soft condition, not an error.
type UpdateUserResult struct {
	Profile *domain.Profile
	Warning string
}

// DeleteUserResult is returned by DeleteUser. Warning is non-empty when the
// profile was removed (authorization stops immediately) but the external
// credential could not be deleted and may linger until cleaned up manually.
type DeleteUserResult struct {
	Warning string
}

// ListUsersResult is a page of profiles for the admin user table.
type ListUsersResult struct {
	Items      []*domain.Profile
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminService performs privileged user mutations that span the identity
// store and the profile store, which are not transacted together.
type AdminService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.Profile, error)
	UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*UpdateUserResult, error)
	DeleteUser(ctx context.Context, id string) (*DeleteUserResult, error)
	GetUser(ctx context.Context, id string) (*domain.Profile, error)
	ListUsers(ctx context.Context, filter ListProfilesFilter) (*ListUsersResult, error)
	// GenerateResetLink produces a password-recovery link for an existing user.
	GenerateResetLink(ctx context.Context, email string) (string, error)
	// ResetPassword sets a new password directly on the identity record.
	// Exposed only on the development surface.
	ResetPassword(ctx context.Context, email, newPassword string) error
}
