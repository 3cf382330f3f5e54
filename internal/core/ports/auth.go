package ports

import (
	"context"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// Verifier resolves a bearer token to the identity that owns it.
// Per-request state machine: Unverified → Verify → Verified → Authorize →
// Authorized | Denied.
type Verifier interface {
	// Verify returns domain.ErrMissingToken for an empty token,
	// domain.ErrInvalidToken when the identity service rejects it, and
	// domain.ErrVerificationFailed once the retry budget is exhausted.
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// Authorizer gates an operation on the caller's resolved role.
type Authorizer interface {
	// Authorize looks up the profile for identityID and returns it when its
	// role is in requiredRoles. domain.ErrProfileNotFound, domain.ErrLookupFailed
	// and domain.ErrForbidden cover the failure modes.
	Authorize(ctx context.Context, identityID string, requiredRoles ...domain.Role) (*domain.Profile, error)
}
