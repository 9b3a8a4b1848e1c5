package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/model"
	"github.com/invisio/invisio-backend/internal/utils"
)

// TokenVerifier validates a raw session token and returns its claims.
type TokenVerifier interface {
	Verify(raw string) (*utils.Claims, error)
}

// JWTAuth returns an Echo middleware that requires a valid bearer token.
// Signature, algorithm, issuer, audience and expiry are all checked by the
// verifier; any failure answers 401 with code 5005. On success the claims
// are available to handlers through Claims(c).
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := BearerToken(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, model.Fail(model.CodeUnauthorized, "Missing bearer token."))
			}
			claims, err := v.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, model.Fail(model.CodeUnauthorized, "Invalid or expired token."))
			}
			SetClaims(c, claims)
			return next(c)
		}
	}
}
