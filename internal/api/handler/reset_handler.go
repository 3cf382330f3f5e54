package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// ResetHandler handles password-recovery endpoints. The direct reset is a
// development convenience and is refused outside the development environment.
type ResetHandler struct {
	service ports.AdminService
	env     string
}

func NewResetHandler(service ports.AdminService, env string) *ResetHandler {
	return &ResetHandler{service: service, env: env}
}

type resetLinkRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetLinkResponse struct {
	Message   string `json:"message"`
	ResetLink string `json:"reset_link"`
}

type devResetRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// GenerateLink handles POST /api/admin/reset-link.
//
// @Summary      Generate a password recovery link for a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resetLinkRequest  true  "User email"
// @Success      200   {object}  resetLinkResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/reset-link [post]
func (h *ResetHandler) GenerateLink(c echo.Context) error {
	var req resetLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.service.GenerateResetLink(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resetLinkResponse{
		Message:   "reset link generated successfully",
		ResetLink: link,
	})
}

// DevResetPassword handles POST /dev/reset-password — development only.
//
// @Summary      Set a user's password directly (development only)
// @Tags         dev
// @Accept       json
// @Produce      json
// @Param        body  body      devResetRequest  true  "Email and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /dev/reset-password [post]
func (h *ResetHandler) DevResetPassword(c echo.Context) error {
	if h.env != "development" {
		return echo.NewHTTPError(http.StatusForbidden, "this endpoint is only available in development mode")
	}

	var req devResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated successfully"})
}
