package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/api/metrics"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// RBAC resolves the caller's profile and enforces that its role is in the
// allowed set for this route. Must run after Auth. Each protected route group
// declares its own set: user management is admin-only, ticket operations
// accept staff and admin.
func RBAC(authorizer ports.Authorizer, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identityID, _ := c.Get(CtxIdentityID).(string)
			if identityID == "" {
				return domain.ErrMissingToken
			}

			profile, err := authorizer.Authorize(c.Request().Context(), identityID, allowedRoles...)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrForbidden):
					metrics.AuthDeniedTotal.WithLabelValues("forbidden").Inc()
				case errors.Is(err, domain.ErrProfileNotFound):
					metrics.AuthDeniedTotal.WithLabelValues("profile_not_found").Inc()
				case errors.Is(err, domain.ErrLookupFailed):
					metrics.AuthDeniedTotal.WithLabelValues("lookup_failed").Inc()
				}
				return err
			}

			c.Set(CtxProfile, profile)
			c.Set(CtxRole, string(profile.Role))

			return next(c)
		}
	}
}
