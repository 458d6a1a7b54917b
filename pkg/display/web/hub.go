package web

import (
	"context"
	"encoding/binary"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// hub tracks the connected clients and fans messages out to them.
// The clients map is owned by the run goroutine.
type hub struct {
	clients map[*client]bool

	broadcast            chan []byte
	register, unregister chan *client
	done                 chan struct{}

	// sync is called from run for every new client, before it
	// receives any broadcast
	sync func(c *client)

	log log.Logger
}

func newHub(l log.Logger, sync func(c *client)) *hub {
	return &hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		sync:       sync,
		log:        l,
	}
}

func (h *hub) run(ctx context.Context) {
	defer close(h.done)

	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.sync(c)
			h.log.Infof("client %d connected from %s", c.id, c.remoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.log.Infof("client %d disconnected", c.id)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// client is too slow, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		case <-t.C:
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.id)
				data = binary.LittleEndian.AppendUint16(data, uint16(c.latency.Load()))
			}
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
				}
			}
		}
	}
}

// send broadcasts msg to every client, unless the hub has stopped.
func (h *hub) send(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

// join registers c with the hub.
func (h *hub) join(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// leave unregisters c from the hub.
func (h *hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
