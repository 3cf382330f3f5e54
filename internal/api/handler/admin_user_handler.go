package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghsm/ticketing-admin/internal/api/metrics"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
)

// AdminUserHandler handles the admin user-management endpoints. Every route
// behind it is gated to the admin role by the router.
type AdminUserHandler struct {
	service ports.AdminService
}

func NewAdminUserHandler(service ports.AdminService) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// Create handles POST /api/admin/users.
//
// @Summary      Create a user account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminUserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Username:    req.Username,
		Role:        domain.Role(req.Role),
	})
	if err != nil {
		result := "error"
		var compErr *domain.CompensationError
		if errors.As(err, &compErr) {
			metrics.CompensationsTotal.WithLabelValues("failed").Inc()
		} else if errors.Is(err, domain.ErrProfileCreateFailed) {
			metrics.CompensationsTotal.WithLabelValues("ok").Inc()
		}
		metrics.UserMutationsTotal.WithLabelValues("create", result).Inc()
		return err
	}

	metrics.UserMutationsTotal.WithLabelValues("create", "ok").Inc()
	return c.JSON(http.StatusCreated, userResponse{
		Message: "user created successfully",
		User:    toUserView(profile),
	})
}

// Update handles PUT /api/admin/users/:id.
//
// @Summary      Update a user account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminUserHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateUserInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	result, err := h.service.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		metrics.UserMutationsTotal.WithLabelValues("update", "error").Inc()
		return err
	}

	outcome := "ok"
	if result.Warning != "" {
		outcome = "partial"
	}
	metrics.UserMutationsTotal.WithLabelValues("update", outcome).Inc()

	return c.JSON(http.StatusOK, userResponse{
		Message: "user updated successfully",
		User:    toUserView(result.Profile),
		Warning: result.Warning,
	})
}

// Delete handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	result, err := h.service.DeleteUser(c.Request().Context(), id)
	if err != nil {
		metrics.UserMutationsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}

	outcome := "ok"
	if result.Warning != "" {
		outcome = "partial"
	}
	metrics.UserMutationsTotal.WithLabelValues("delete", outcome).Inc()

	return c.JSON(http.StatusOK, messageResponse{
		Message: "user deleted successfully",
		Warning: result.Warning,
	})
}

// Get handles GET /api/admin/users/:id.
//
// @Summary      Get a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  userView
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminUserHandler) Get(c echo.Context) error {
	profile, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(profile))
}

// List handles GET /api/admin/users.
//
// @Summary      List user accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  string  false  "Filter by role"
// @Param        search  query  string  false  "Partial match on email, username or display name"
// @Param        page    query  int     false  "Page (1-based)"
// @Param        limit   query  int     false  "Page size (max 100)"
// @Success      200  {object}  listUsersResponse
// @Router       /api/admin/users [get]
func (h *AdminUserHandler) List(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	result, err := h.service.ListUsers(c.Request().Context(), ports.ListProfilesFilter{
		Role:   domain.Role(q.Role),
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return err
	}

	items := make([]userView, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, toUserView(p))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
