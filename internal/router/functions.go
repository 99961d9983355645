package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/handler"
	"github.com/vitasports/backend/internal/middleware"
)

func registerFunctionRoutes(r *echo.Echo, h *handler.Handlers, limiter *middleware.RateLimitMiddleware) {
	functions := r.Group("/functions", limiter.Limit())
	functions.GET("/:name", h.Functions.Invoke)
	functions.POST("/:name", h.Functions.Invoke)

	proxy := r.Group("/api/proxy", limiter.LimitWith(h.Proxy.Throttled))
	proxy.Any("/:functionName", h.Proxy.Proxy)
}

func registerRealtimeRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/realtime/leaderboard", h.Realtime.Leaderboard)
}
