package web

import (
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/pkg/display"
)

type client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte

	id         uint8
	remoteAddr string
	// latency is the moving average round trip time in milliseconds
	latency atomic.Uint32
}

// readPump reads button events from the client until the
// connection is closed.
func (c *client) readPump(buttons *display.Buttons) {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}

		switch {
		case len(message) == 0:
		case message[0] == Closing:
			return
		case len(message) < 2 || message[0] > joypad.ButtonDown:
			// malformed
		case message[1] == 0:
			buttons.Release(message[0])
		default:
			buttons.Press(message[0])
		}
	}
}

// writePump writes every message queued for the client, until the
// hub closes the send channel.
func (c *client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			c.hub.leave(c)
			return
		}

		// update average latency
		if rtt, err := latency(c.conn.UnderlyingConn()); err == nil {
			avg := c.latency.Load()
			c.latency.Store((avg*9 + uint32(rtt.Milliseconds())) / 10)
		}
	}

	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
