package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/api/metrics"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// Context keys populated by the middleware chain.
const (
	CtxIdentityID = "identity_id"
	CtxEmail      = "email"
	CtxProfile    = "profile"
	CtxRole       = "role"
)

// Auth extracts the bearer token, verifies it through the credential
// verifier, and injects the resolved identity into the echo context.
// The error mapping to HTTP statuses lives in the central error handler.
func Auth(verifier ports.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.AuthChecksTotal.WithLabelValues("missing_token").Inc()
				return err
			}

			identity, err := verifier.Verify(c.Request().Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrInvalidToken):
					metrics.AuthChecksTotal.WithLabelValues("invalid_token").Inc()
				case errors.Is(err, domain.ErrVerificationFailed):
					metrics.AuthChecksTotal.WithLabelValues("unavailable").Inc()
				}
				return err
			}

			metrics.AuthChecksTotal.WithLabelValues("ok").Inc()
			c.Set(CtxIdentityID, identity.ID)
			c.Set(CtxEmail, identity.Email)

			return next(c)
		}
	}
}

// bearerToken pulls the token out of the Authorization header. An absent or
// malformed header is a missing token; the token value itself is opaque.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", domain.ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrMissingToken
	}
	return parts[1], nil
}
