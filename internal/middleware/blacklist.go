package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/model"
)

// RevocationChecker answers whether a bearer token has been logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// SessionGate rejects requests whose bearer token is on the denylist. It
// runs before any signature check so that a logged-out token is refused
// even while it is still cryptographically valid. Requests without a
// token pass through untouched. If the denylist cannot be queried the
// request fails with 500 rather than being let through.
func SessionGate(checker RevocationChecker, log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return next(c)
			}
			revoked, err := checker.IsRevoked(c.Request().Context(), token)
			if err != nil {
				log.Error("denylist lookup failed", slog.Any("err", err))
				return c.JSON(http.StatusInternalServerError, model.Fail(model.CodeServerError, "An unexpected server error occurred."))
			}
			if revoked {
				return c.JSON(http.StatusUnauthorized, model.Fail(model.CodeTokenRevoked, "Token is blacklisted."))
			}
			return next(c)
		}
	}
}
