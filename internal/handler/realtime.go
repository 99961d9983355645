package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/vitasports/backend/internal/middleware"
	"github.com/vitasports/backend/internal/model"
	"github.com/vitasports/backend/internal/server"
	"github.com/vitasports/backend/internal/service"
	"github.com/vitasports/backend/internal/validation"
)

type leaderboardReader interface {
	Get(ctx context.Context, p *model.LeaderboardPayload) (*model.Leaderboard, error)
}

// leaderboardSnapshot is the first frame sent to a new subscriber.
type leaderboardSnapshot struct {
	Type        string             `json:"type"`
	Leaderboard *model.Leaderboard `json:"leaderboard"`
}

type RealtimeHandler struct {
	Handler
	leaderboard leaderboardReader
	upgrader    websocket.Upgrader
}

func NewRealtimeHandler(s *server.Server, leaderboard *service.LeaderboardService) *RealtimeHandler {
	origins := s.Config.Server.CORSAllowedOrigins
	return &RealtimeHandler{
		Handler:     NewHandler(s),
		leaderboard: leaderboard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, "*") || slices.Contains(origins, origin)
			},
		},
	}
}

// Leaderboard upgrades to a websocket, sends the current standings and then
// relays every score update until the client disconnects.
func (h *RealtimeHandler) Leaderboard(c echo.Context) error {
	req := new(model.LeaderboardPayload)
	if err := validation.BindAndValidate(c, req); err != nil {
		return err
	}

	logger := middleware.GetLogger(c)

	board, err := h.leaderboard.Get(c.Request().Context(), req)
	if err != nil {
		return err
	}
	initial, err := json.Marshal(leaderboardSnapshot{Type: "snapshot", Leaderboard: board})
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	logger.Debug().Int("subscribers", h.server.Hub.Count()+1).Msg("leaderboard subscriber connected")
	h.server.Hub.Serve(conn, initial)
	return nil
}
