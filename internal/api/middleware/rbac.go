package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skatespot/skatespot-api/internal/core/domain"
	"github.com/skatespot/skatespot-api/internal/core/security"
)

// RBAC restricts a route to the given roles. It must run after CurrentUser.
func RBAC(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok || user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, err := security.Require(user, allowed...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
