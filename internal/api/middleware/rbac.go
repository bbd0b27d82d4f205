package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crusher-sewa/materials-api/internal/core/domain"
)

// RBAC enforces role-based access control. Routes declare their allowed-role
// set; an unknown or missing role claim is always forbidden.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, _ := c.Get("role").(string)
			role, ok := domain.ParseRole(raw)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "You do not have permission to perform this action")
			}
			return next(c)
		}
	}
}
