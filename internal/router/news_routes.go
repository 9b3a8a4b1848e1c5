package router

import (
	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/handler"
)

// RegisterNews mounts /api/news. Listing is anonymous and cached.
func RegisterNews(e *echo.Echo, n *handler.NewsHandler, jwt, cache echo.MiddlewareFunc) {
	g := e.Group("/api/news")
	g.GET("/all", n.All, cache)
	g.POST("/submit", n.Submit, jwt)
	g.POST("/analyze", n.Analyze, jwt)
}
