package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eleven-am/classroom-relay/internal/hub"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSServer accepts client connections and hands each one to the hub's
// protocol dispatcher.
type WSServer struct {
	hub    *hub.Hub
	logger *slog.Logger
}

func NewWSServer(h *hub.Hub, logger *slog.Logger) *WSServer {
	return &WSServer{
		hub:    h,
		logger: logger.With("component", "ws_server"),
	}
}

func (s *WSServer) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", s.HandleConnection)
}

func (s *WSServer) HandleConnection(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	conn := newWSConn(ws, s.logger)
	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	s.logger.Info("client connected", "conn_id", conn.ID())

	go conn.writePump()
	s.hub.HandleConn(c.Request().Context(), conn)

	_ = conn.Close()
	s.logger.Info("client disconnected", "conn_id", conn.ID())
	return nil
}
