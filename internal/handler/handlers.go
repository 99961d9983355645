package handler

import (
	"github.com/vitasports/backend/internal/server"
	"github.com/vitasports/backend/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
	Functions *FunctionsHandler
	Proxy     *ProxyHandler
	Realtime  *RealtimeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
		Functions: NewFunctionsHandler(s, services),
		Proxy:     NewProxyHandler(s),
		Realtime:  NewRealtimeHandler(s, services.Leaderboard),
	}
}
