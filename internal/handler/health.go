package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/model"
)

// Health is the liveness probe: it answers "ok" as long as the process
// serves HTTP.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Ready returns a readiness probe that runs every check with a short
// timeout. Any failing check answers 503 and names the dependency.
func Ready(checks map[string]Check) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		status := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}
		if !healthy {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"code": model.CodeServerError, "checks": status})
		}
		return c.JSON(http.StatusOK, echo.Map{"code": model.CodeOK, "checks": status})
	}
}
