package gateway

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kaganatalay/ciz.im/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Time between keepalive pings, must be less than pongWait
	pingPeriod = 30 * time.Second

	// Canvas strokes arrive in batches, so allow generous frames
	maxMessageSize = 64 * 1024

	// Buffer size for outgoing messages
	outboxSize = 256
)

// Client is one websocket connection bound to a session hub
type Client struct {
	hub         *Hub
	conn        *websocket.Conn
	id          model.ConnectionID
	outbox      chan []byte
	connectedAt time.Time
	logger      *slog.Logger
}

// NewClient wraps an upgraded connection
func NewClient(hub *Hub, conn *websocket.Conn, id model.ConnectionID, connectedAt time.Time, logger *slog.Logger) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		id:          id,
		outbox:      make(chan []byte, outboxSize),
		connectedAt: connectedAt,
		logger:      logger.With(slog.String("conn_id", string(id))),
	}
}

// readPump reads inbound messages and hands them to the gateway until the
// connection drops or the client asks to leave
func (c *Client) readPump(g *Gateway) {
	defer func() {
		g.handleDisconnect(c)
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.hub.SendTo(c.id, model.Event{
				Type: model.EventError,
				Data: model.ErrorPayload{Message: "malformed message"},
			})
			continue
		}

		if stop := g.dispatch(c, msg); stop {
			return
		}
	}
}

// writePump drains the outbox onto the wire and keeps the connection alive
// with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
