package domain

import "time"

// Role is the single authorization dimension. Every profile carries exactly
// one role; admin implies every permission staff has.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Identity is the hosted identity service's notion of "who". It is created
// and destroyed only through the service API; the token used to resolve it is
// never persisted here.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Profile is the application's user record, keyed 1:1 with Identity by shared
// id. A Profile must never exist without a matching Identity and vice versa
// for active accounts; the admin service creates and deletes them together.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin is derived from Role, which is the authoritative field. Kept for
// callers that only need the boolean view.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
