package ws

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wordsiege/wordsiege-go/internal/model"
)

const (
	// writeWait bounds a single frame write
	writeWait = 10 * time.Second
	// pongWait is how long a silent peer survives
	pongWait = 60 * time.Second
	// pingPeriod must be under pongWait
	pingPeriod = (pongWait * 9) / 10
	// maxMessageSize bounds inbound frames; game messages are tiny
	maxMessageSize = 4096
	// sendBufferSize is the outbound event buffer per connection
	sendBufferSize = 32
)

// client is one websocket connection. readPump is the only reader and
// writePump the only writer, per gorilla's concurrency rules.
type client struct {
	id   model.PlayerID
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

func newClient(id model.PlayerID, conn *websocket.Conn, hub *Hub) *client {
	return &client{
		id:   id,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error",
					slog.String("player_id", string(c.id)),
					slog.String("error", err.Error()))
			}
			return
		}
		c.hub.dispatch(c.id, data)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
