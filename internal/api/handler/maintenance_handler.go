package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// MaintenanceHandler exposes the maintenance-mode settings: public read,
// admin-only write.
type MaintenanceHandler struct {
	service ports.MaintenanceService
}

func NewMaintenanceHandler(service ports.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

type maintenanceRequest struct {
	Enabled          bool   `json:"enabled"`
	Message          string `json:"message"`
	EstimatedTime    string `json:"estimated_time"`
	ContactEmail     string `json:"contact_email"   validate:"omitempty,email"`
	AllowAdminAccess bool   `json:"allow_admin_access"`
}

// Get handles GET /api/maintenance — current maintenance status, no auth.
//
// @Summary      Get maintenance mode status
// @Tags         maintenance
// @Produce      json
// @Success      200  {object}  domain.MaintenanceSettings
// @Router       /api/maintenance [get]
func (h *MaintenanceHandler) Get(c echo.Context) error {
	settings, err := h.service.Settings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// Update handles PUT /api/admin/maintenance — admin only.
//
// @Summary      Update maintenance mode settings
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      maintenanceRequest  true  "Maintenance settings"
// @Success      200   {object}  domain.MaintenanceSettings
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/maintenance [put]
func (h *MaintenanceHandler) Update(c echo.Context) error {
	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	settings, err := h.service.Update(c.Request().Context(), domain.MaintenanceSettings{
		Enabled:          req.Enabled,
		Message:          req.Message,
		EstimatedTime:    req.EstimatedTime,
		ContactEmail:     req.ContactEmail,
		AllowAdminAccess: req.AllowAdminAccess,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}
