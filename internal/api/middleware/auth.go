package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minitweet/twitter-api/internal/api/handler"
	"github.com/minitweet/twitter-api/internal/core/domain"
	"github.com/minitweet/twitter-api/internal/core/ports"
)

// Auth resolves the bearer token to a user and injects it into the context.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Identify(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}
