package domain

import (
	"errors"
	"fmt"
)

// Authentication / authorization errors.
var (
	// ErrMissingToken means the Authorization header was absent or malformed.
	ErrMissingToken = errors.New("no token provided")
	// ErrInvalidToken covers both "service reports an error" and "no identity
	// found" — the two are deliberately indistinguishable to the caller.
	ErrInvalidToken = errors.New("invalid token")
	// ErrVerificationFailed is surfaced only after the verifier's retry
	// budget is exhausted.
	ErrVerificationFailed = errors.New("auth verification failed")
	ErrForbidden          = errors.New("access forbidden")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrLookupFailed       = errors.New("profile lookup failed")
)

// Input and record errors.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Multi-step mutation errors (see AdminService).
var (
	ErrIdentityCreateFailed = errors.New("failed to create identity")
	ErrProfileCreateFailed  = errors.New("failed to create user record")
	ErrProfileUpdateFailed  = errors.New("failed to update user record")
	ErrProfileDeleteFailed  = errors.New("failed to delete user record")
)

// ErrServiceUnavailable marks transient infrastructure failures. Errors
// wrapping it are retried by the credential verifier before surfacing.
var ErrServiceUnavailable = errors.New("service unavailable")

// CompensationError signals that a mutation failed AND the compensating
// cleanup also failed, leaving the identity and profile stores inconsistent.
// Both causes are preserved because an operator needs them to reconcile.
type CompensationError struct {
	Cause   error // the failure that triggered compensation
	CompErr error // the failure of the compensating action itself
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation failed: %v (original: %v)", e.CompErr, e.Cause)
}

func (e *CompensationError) Unwrap() error { return e.Cause }
