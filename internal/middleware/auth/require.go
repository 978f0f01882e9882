package auth

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RequireAuth rejects requests that reached a protected route without an
// established identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := FromContext(c); !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":             "unauthorized",
					"error_description": "full authentication is required to access this resource",
				})
			}
			return next(c)
		}
	}
}

// RequireRole additionally demands one of the given authorities.
func RequireRole(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := FromContext(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error":             "unauthorized",
					"error_description": "full authentication is required to access this resource",
				})
			}
			for _, role := range required {
				if slices.Contains(id.Authorities, role) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "you don't have enough rights")
		}
	}
}
