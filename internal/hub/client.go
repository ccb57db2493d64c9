package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/soar/GamepadKeyMouse/internal/dispatch"
	"github.com/soar/GamepadKeyMouse/internal/keyboard"
)

// PointerQueue accepts key presses clicked in the browser.
type PointerQueue interface {
	QueuePointer(ev dispatch.PointerEvent) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPumpWithHandler reads messages from the WebSocket and queues pointer
// presses and releases. A client that disconnects while holding a key
// releases it.
func (c *Client) ReadPumpWithHandler(queue PointerQueue) {
	holding := false
	defer func() {
		if holding {
			queue.QueuePointer(dispatch.PointerEvent{Pressed: false})
		}
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var clientMsg ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			c.hub.logger.Warnw("bad client message", "error", err)
			continue
		}

		pos := keyboard.Point{X: clientMsg.X, Y: clientMsg.Y}
		switch clientMsg.Type {
		case TypePress:
			if queue.QueuePointer(dispatch.PointerEvent{Pressed: true, Pos: pos}) {
				holding = true
			}
		case TypeRelease:
			queue.QueuePointer(dispatch.PointerEvent{Pressed: false, Pos: pos})
			holding = false
		default:
			c.hub.logger.Debugw("unknown client message", "type", clientMsg.Type)
		}
	}
}
