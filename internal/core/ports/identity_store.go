package ports

import (
	"context"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// CreateIdentityInput carries everything needed to mint an identity in the
// hosted service. Metadata travels with the identity record (display name,
// requested role) so the service-side provisioning trigger can seed a profile.
type CreateIdentityInput struct {
	Email        string
	Password     string
	EmailConfirm bool
	Metadata     map[string]string
}

// UpdateIdentityInput holds the mutable identity fields. Nil means "leave as is".
type UpdateIdentityInput struct {
	Email    *string
	Password *string
	Metadata map[string]string
}

// IdentityStore is the consumed surface of the hosted Identity & Data
// Service's auth API. Implementations must wrap transient network failures
// with domain.ErrServiceUnavailable so the verifier can retry them.
type IdentityStore interface {
	// ResolveToken resolves a bearer token to the identity it was issued for.
	// "Token rejected" and "no identity found" both return domain.ErrInvalidToken.
	ResolveToken(ctx context.Context, token string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	Create(ctx context.Context, in CreateIdentityInput) (*domain.Identity, error)
	Update(ctx context.Context, id string, in UpdateIdentityInput) error
	Delete(ctx context.Context, id string) error
	// GenerateRecoveryLink produces a password-recovery URL for the given
	// email, redirecting to redirectTo after completion.
	GenerateRecoveryLink(ctx context.Context, email, redirectTo string) (string, error)
}
