package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PrincipalHeader carries the caller's opaque principal, injected by the
// gateway that authenticated the request. The service trusts it verbatim
// and never derives identity from anything else in the request.
const PrincipalHeader = "X-Principal"

const principalContextKey = "principal"

// ExtractIdentity stores the caller principal on the request context.
func ExtractIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(principalContextKey, c.Request().Header.Get(PrincipalHeader))
		return next(c)
	}
}

// RequireIdentity rejects requests without a principal. Mutating routes use
// it; reads stay open.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Principal(c) == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "caller identity required"})
		}
		return next(c)
	}
}

// Principal returns the caller principal for the request, or "".
func Principal(c echo.Context) string {
	principal, _ := c.Get(principalContextKey).(string)
	return principal
}
