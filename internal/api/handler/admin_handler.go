package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crusher-sewa/materials-api/internal/api/metrics"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
)

// AdminHandler handles admin-only account management.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateUser creates an account with an explicit role.
//
// @Summary      Create a user account (any role)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userMessageResponse
// @Failure      400   {object}  messageResponse
// @Router       /api/admin/users/create [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	user, err := h.adminService.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role)).Inc()

	return c.JSON(http.StatusCreated, userMessageResponse{
		User:    toUserResponse(user),
		Message: fmt.Sprintf("%s account created successfully for %s", user.Role, user.Name),
	})
}

// ListUsers returns all accounts, newest first, without password material.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listUsersResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, listUsersResponse{Users: out})
}

// UpdateUserStatus activates or deactivates an account.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "User id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  userMessageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/admin/users/{id}/status [patch]
func (h *AdminHandler) UpdateUserStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isActive must be a boolean")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "isActive must be a boolean")
	}

	user, err := h.adminService.SetUserActive(c.Request().Context(), c.Param("id"), *req.IsActive)
	if err != nil {
		return err
	}

	verb := "deactivated"
	if user.IsActive {
		verb = "activated"
	}
	return c.JSON(http.StatusOK, userMessageResponse{
		User:    toUserResponse(user),
		Message: fmt.Sprintf("User %s successfully", verb),
	})
}
