package ports

import (
	"context"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// ProfileUpdate holds the mutable profile fields. Nil means "leave as is".
type ProfileUpdate struct {
	Email       *string
	DisplayName *string
	Username    *string
	Role        *domain.Role
	IsActive    *bool
}

// ListProfilesFilter carries query parameters for the admin user table.
type ListProfilesFilter struct {
	Role   domain.Role // optional: filter by role
	Search string      // optional: partial match on email, username or display name
	Page   int         // 1-based
	Limit  int         // capped at 100 by the service
}

// ProfileStore defines persistence operations for application user records.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByEmail(ctx context.Context, email string) (*domain.Profile, error)
	List(ctx context.Context, filter ListProfilesFilter) ([]*domain.Profile, int64, error)
	Insert(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, id string, upd ProfileUpdate) (*domain.Profile, error)
	Delete(ctx context.Context, id string) error
}
