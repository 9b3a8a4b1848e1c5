// Package router assembles the Echo instance: global middleware, the
// session gate and every route of the API.
package router

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/invisio/invisio-backend/internal/handler"
	"github.com/invisio/invisio-backend/internal/middleware"
)

// Deps are the collaborators New wires into routes. RateLimit and Cache
// may be nil, in which case those routes run unthrottled and uncached.
type Deps struct {
	Log         *slog.Logger
	Revocations middleware.RevocationChecker
	Verifier    middleware.TokenVerifier
	RateLimit   echo.MiddlewareFunc
	Cache       echo.MiddlewareFunc

	Auth        *handler.AuthHandler
	News        *handler.NewsHandler
	Suggestions *handler.SuggestionsHandler
	Checks      map[string]handler.Check
}

// New builds the HTTP server. The session gate is installed globally ahead
// of every route-level JWT check, so a logged-out token is refused on all
// endpoints, anonymous ones included.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(d.Log))
	e.Use(echomw.Recover())
	e.Use(middleware.SessionGate(d.Revocations, d.Log))

	jwt := middleware.JWTAuth(d.Verifier)
	RegisterRoutes(e, d.Checks)
	RegisterAuth(e, d.Auth, jwt, orNoop(d.RateLimit))
	RegisterNews(e, d.News, jwt, orNoop(d.Cache))
	RegisterSuggestions(e, d.Suggestions, jwt, orNoop(d.Cache))
	return e
}

// RegisterRoutes exposes the liveness and readiness probes.
func RegisterRoutes(e *echo.Echo, checks map[string]handler.Check) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(checks))
}

func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= 500 {
				level = slog.LevelError
			}
			log.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

func orNoop(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return mw
}
