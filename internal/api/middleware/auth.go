package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/skatespot/skatespot-api/internal/core/domain"
)

// UserContextKey is the echo context key under which CurrentUser stores the
// resolved account.
const UserContextKey = "current_user"

// UserResolver turns a bearer token into the account it belongs to.
type UserResolver interface {
	ResolveActive(ctx context.Context, token string) (*domain.User, error)
}

// CurrentUser extracts the bearer token, resolves it to an active account and
// injects the account into context. Requests without a usable token are
// rejected with 401.
func CurrentUser(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.ResolveActive(c.Request().Context(), parts[1])
			if err != nil {
				// A token whose subject no longer resolves to an account is
				// indistinguishable from an invalid token to the caller.
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}
