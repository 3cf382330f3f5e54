package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// Maintenance rejects traffic with 503 while maintenance mode is enabled.
// Admins are let through when the settings allow admin access. Runs after
// RBAC so the resolved role is available; a settings read failure fails open,
// since maintenance mode is an operational convenience, not a security
// boundary.
func Maintenance(svc ports.MaintenanceService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			settings, err := svc.Settings(c.Request().Context())
			if err != nil {
				log.Warn().Err(err).Msg("maintenance settings unavailable, allowing request")
				return next(c)
			}

			if !settings.Enabled {
				return next(c)
			}

			role, _ := c.Get(CtxRole).(string)
			if settings.AllowAdminAccess && role == string(domain.RoleAdmin) {
				return next(c)
			}

			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"error":          "maintenance in progress",
				"message":        settings.Message,
				"estimated_time": settings.EstimatedTime,
				"contact_email":  settings.ContactEmail,
			})
		}
	}
}
