package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

const (
	verifyRetries = 2
	verifyBackoff = time.Second
)

// CredentialVerifier resolves bearer tokens through the identity service,
// retrying transient failures with a fixed backoff. It performs reads only.
type CredentialVerifier struct {
	identities ports.IdentityStore
	log        zerolog.Logger
	sleep      func(time.Duration) // injectable for tests
}

func NewCredentialVerifier(identities ports.IdentityStore, log zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{
		identities: identities,
		log:        log,
		sleep:      time.Sleep,
	}
}

// Verify resolves token to an identity. Transient service failures are
// retried up to verifyRetries more times with verifyBackoff between attempts;
// only exhaustion surfaces domain.ErrVerificationFailed. An invalid token and
// an unknown identity are indistinguishable (both domain.ErrInvalidToken) to
// avoid leaking whether a token was well-formed.
func (v *CredentialVerifier) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	var lastErr error
	for attempt := 0; attempt <= verifyRetries; attempt++ {
		if attempt > 0 {
			v.sleep(verifyBackoff)
		}

		identity, err := v.identities.ResolveToken(ctx, token)
		if err == nil {
			if identity == nil {
				return nil, domain.ErrInvalidToken
			}
			return identity, nil
		}

		if !errors.Is(err, domain.ErrServiceUnavailable) {
			// Rejected token or unknown identity: terminal, never retried.
			return nil, domain.ErrInvalidToken
		}

		lastErr = err
		v.log.Warn().Err(err).Int("attempt", attempt+1).Msg("token verification attempt failed")
	}

	v.log.Error().Err(lastErr).Msg("token verification retries exhausted")
	return nil, domain.ErrVerificationFailed
}
