// Package router builds the echo instance: global middleware in order,
// then the route groups.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/handler"
	"github.com/vitasports/backend/internal/middleware"
	"github.com/vitasports/backend/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Auth.OptionalAuth,
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerFunctionRoutes(router, h, middlewares.RateLimit)
	registerRealtimeRoutes(router, h)

	return router
}
