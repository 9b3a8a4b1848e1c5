package middleware

// identity.go holds the request helpers shared by the middleware and the
// handlers: bearer extraction and access to the verified claims.

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/utils"
)

const claimsKey = "claims"

// BearerToken returns the token carried in the Authorization header, or ""
// when the header is absent. The last space-separated field is taken, so
// "Bearer abc" and a bare "abc" both yield "abc".
func BearerToken(c echo.Context) string {
	fields := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// SetClaims stores verified claims on the request context.
func SetClaims(c echo.Context, cl *utils.Claims) { c.Set(claimsKey, cl) }

// Claims returns the claims stored by JWTAuth.
func Claims(c echo.Context) (*utils.Claims, bool) {
	cl, ok := c.Get(claimsKey).(*utils.Claims)
	return cl, ok && cl != nil
}

// userID returns the authenticated subject, or "anon".
func userID(c echo.Context) string {
	if cl, ok := Claims(c); ok && cl.Subject != "" {
		return cl.Subject
	}
	return "anon"
}
