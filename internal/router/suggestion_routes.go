package router

import (
	"github.com/labstack/echo/v4"

	"github.com/invisio/invisio-backend/internal/handler"
)

// RegisterSuggestions mounts /api/suggestions. Only the public listing is
// anonymous; it is also the only cached route.
func RegisterSuggestions(e *echo.Echo, s *handler.SuggestionsHandler, jwt, cache echo.MiddlewareFunc) {
	e.GET("/api/suggestions/getpublic", s.GetPublic, cache)

	g := e.Group("/api/suggestions", jwt)
	g.POST("/submit", s.Submit)
	g.GET("/getMyFavSugg", s.GetMyFavorites)
	g.GET("/archived", s.GetArchived)
	g.POST("/:id/toggle-favorite", s.ToggleFavorite)
	g.PUT("/:id/toggle-public", s.TogglePublic)
	g.PUT("/:id/archive", s.Archive)
	g.DELETE("/:id", s.Delete)
}
