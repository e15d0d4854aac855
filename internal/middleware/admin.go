package middleware

import (
	"net/http"

	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// RequireAdmin gates a route to administrators. It must run after
// RequireUser, which put the claims into the context.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !claims.Admin {
				return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to perform this operation!")
			}
			return next(c)
		}
	}
}
