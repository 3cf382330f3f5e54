package handler

import (
	"time"

	"github.com/ghsm/ticketing-admin/internal/core/domain"
)

type createUserRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"required"`
	Username    string `json:"username"`
	Role        string `json:"role"         validate:"omitempty,oneof=user staff admin"`
}

type updateUserRequest struct {
	Email       *string `json:"email"        validate:"omitempty,email"`
	DisplayName *string `json:"display_name"`
	Role        *string `json:"role"         validate:"omitempty,oneof=user staff admin"`
}

type listUsersQuery struct {
	Role   string `query:"role"`
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// userView is the outward shape of a profile. is_admin is derived from the
// authoritative role field and kept for older consumers of the admin UI.
type userView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	IsAdmin     bool      `json:"is_admin"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toUserView(p *domain.Profile) userView {
	return userView{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Username:    p.Username,
		Role:        string(p.Role),
		IsAdmin:     p.IsAdmin(),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type userResponse struct {
	Message string   `json:"message"`
	User    userView `json:"user"`
	Warning string   `json:"warning,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}

type listUsersResponse struct {
	Items      []userView `json:"items"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}

// errorResponse documents the error envelope for swagger; the actual encoding
// happens in the central error handler.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
