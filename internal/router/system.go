package router

import (
	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/handler"
	"github.com/vitasports/backend/static"
)

func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
