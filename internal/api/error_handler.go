package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Detail is
// populated only for compensation failures, where the operator needs both
// underlying causes.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Tokens and passwords never appear in messages or logs.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// A failed compensating cleanup leaves the identity and profile stores
	// inconsistent; both causes travel in the detail so an operator can act.
	var compErr *domain.CompensationError
	if errors.As(err, &compErr) {
		return http.StatusInternalServerError, errorResponse{
			Error:  "user creation failed and cleanup of the partially created account also failed; operator attention required",
			Detail: compErr.Error(),
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, errorResponse{Error: "no token provided"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "invalid token"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, errorResponse{Error: "profile not found"}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: "user not found"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, errorResponse{Error: "user with this email already exists"}
	case errors.Is(err, domain.ErrIdentityCreateFailed):
		return http.StatusBadRequest, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrProfileCreateFailed),
		errors.Is(err, domain.ErrProfileUpdateFailed),
		errors.Is(err, domain.ErrProfileDeleteFailed):
		return http.StatusInternalServerError, errorResponse{Error: err.Error()}
	case errors.Is(err, domain.ErrVerificationFailed):
		return http.StatusInternalServerError, errorResponse{Error: "auth verification failed"}
	case errors.Is(err, domain.ErrLookupFailed):
		return http.StatusInternalServerError, errorResponse{Error: "profile lookup failed"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
