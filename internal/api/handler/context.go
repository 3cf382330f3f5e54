package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/api/middleware"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// ctxProfile extracts the profile injected by the RBAC middleware and
// performs a fast-fail check before any service call: a missing profile
// proves the middleware chain did not run for this route.
func ctxProfile(c echo.Context) (*domain.Profile, error) {
	profile, _ := c.Get(middleware.CtxProfile).(*domain.Profile)
	if profile == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return profile, nil
}
