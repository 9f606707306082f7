package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/eleven-am/classroom-relay/internal/hub"
	"github.com/eleven-am/classroom-relay/internal/shared"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
)

// wsConn adapts one gorilla connection to hub.Conn. Reads happen on
// the dispatcher goroutine; writes are funneled through writePump.
type wsConn struct {
	id     string
	ws     *websocket.Conn
	logger *slog.Logger

	send chan any
	done chan struct{}
	once sync.Once
}

func newWSConn(ws *websocket.Conn, logger *slog.Logger) *wsConn {
	id := uuid.New().String()
	return &wsConn{
		id:     id,
		ws:     ws,
		logger: logger.With("conn_id", id),
		send:   make(chan any, 256),
		done:   make(chan struct{}),
	}
}

func (c *wsConn) ID() string {
	return c.id
}

// Read blocks for the next text or binary frame. Control frames are
// consumed by gorilla's ping/pong machinery.
func (c *wsConn) Read() (hub.Frame, error) {
	for {
		mt, data, err := c.ws.ReadMessage()
		if err != nil {
			return hub.Frame{}, err
		}
		switch mt {
		case websocket.TextMessage:
			return hub.Frame{Data: data}, nil
		case websocket.BinaryMessage:
			return hub.Frame{Binary: true, Data: data}, nil
		}
	}
}

func (c *wsConn) Send(v any) error {
	select {
	case <-c.done:
		return shared.ErrClosed
	case c.send <- v:
		return nil
	default:
		c.logger.Warn("send buffer full, dropping message")
		return nil
	}
}

func (c *wsConn) Close() error {
	c.once.Do(func() {
		close(c.done)
	})
	return c.ws.Close()
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))

			data, err := json.Marshal(msg)
			if err != nil {
				c.logger.Error("marshal error", "error", err)
				continue
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("write error", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
