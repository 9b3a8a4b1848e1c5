package router

import (
	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/handler"
)

// RegisterAuth mounts the account endpoints under /api/invisio. Signup and
// login are rate limited; logout needs no valid JWT but still passes the
// global session gate.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwt, limit echo.MiddlewareFunc) {
	g := e.Group("/api/invisio")
	g.POST("/signup", a.Signup, limit)
	g.POST("/login", a.Login, limit)
	g.POST("/logout", a.Logout)
	g.GET("/getMe", a.GetMe, jwt)
}
