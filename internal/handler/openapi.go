package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/server"
	"github.com/vitasports/backend/static"
)

// OpenAPIHandler serves the API reference UI. The page loads openapi.json
// from /static.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{Handler: NewHandler(s)}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := static.Files.ReadFile("openapi.html")
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
