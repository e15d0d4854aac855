package handlers

import (
	"fmt"
	"net/http"

	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserClaimsFromContext returns the JWT claims stored by the auth
// middleware, or nil for anonymous requests
func getUserClaimsFromContext(c echo.Context) *models.JwtCustomClaims {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok {
		return nil
	}
	return claims
}

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request carries no valid session
func getUserIDFromContext(c echo.Context) uint {
	claims := getUserClaimsFromContext(c)
	if claims == nil {
		return 0
	}
	return claims.UserID
}

// OperationNotSupported answers a verb that is deliberately not defined for
// a path. This is a distinct signal from a missing resource: the route
// exists, the verb does not, and the response is 403 plain text rather
// than a routing 404.
func OperationNotSupported(c echo.Context) error {
	return c.String(http.StatusForbidden,
		fmt.Sprintf("%s operation not supported on %s", c.Request().Method, c.Request().URL.Path))
}

// Preflight answers CORS preflight requests with 200 and no body,
// independent of authentication
func Preflight(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
