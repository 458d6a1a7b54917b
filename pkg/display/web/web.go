// Package web provides a display driver that streams frames to
// browsers over a websocket. Frames are brotli compressed, and a
// frame that is still in the shared cache is sent as its index
// only. Clients send button events back.
package web

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/pkg/config"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Driver is the websocket display driver.
type Driver struct {
	addr    string
	quality int
	log     log.Logger

	hub     *hub
	buttons *display.Buttons

	mu      sync.Mutex
	frames  *cache
	current []byte // encoded current frame
	nextID  uint8
}

var _ display.Driver = (*Driver)(nil)

// New returns a web driver configured by cfg.
func New(cfg config.Web, l log.Logger) *Driver {
	if l == nil {
		l = log.NewNullLogger()
	}
	l = log.WithField(l, "component", "web")
	d := &Driver{
		addr:    cfg.Address,
		quality: cfg.Compression,
		log:     l,
		frames:  newCache(cfg.CacheSize),
		buttons: &display.Buttons{},
	}
	d.hub = newHub(l, d.sync)
	return d
}

// Start serves clients on the configured address and streams every
// frame received on fb to them, until ctx is cancelled or fb is closed.
func (d *Driver) Start(ctx context.Context, fb <-chan []byte, buttons *display.Buttons) error {
	if buttons != nil {
		d.buttons = buttons
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go d.hub.run(ctx)

	srv := &http.Server{Addr: d.addr, Handler: d.Handler()}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	d.log.Infof("listening on %s", d.addr)

	defer func() {
		shutdown, stop := context.WithTimeout(context.Background(), time.Second)
		defer stop()
		_ = srv.Shutdown(shutdown)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("%w", err)
		case frame, ok := <-fb:
			if !ok {
				return nil
			}
			if err := d.publish(frame); err != nil {
				return err
			}
		}
	}
}

// Handler returns the HTTP handler upgrading requests to websocket
// clients.
func (d *Driver) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// upgrade the connection to a websocket connection
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.log.Warnf("upgrading %s: %v", r.RemoteAddr, err)
			return
		}

		d.mu.Lock()
		d.nextID++
		id := d.nextID
		d.mu.Unlock()

		c := &client{
			hub:        d.hub,
			conn:       conn,
			send:       make(chan []byte, 256),
			id:         id,
			remoteAddr: r.RemoteAddr,
		}
		if !d.hub.join(c) {
			conn.Close()
			return
		}

		// spawn read/write pumps
		go c.readPump(d.buttons)
		go c.writePump()
	})
}

// publish encodes an RGB frame and broadcasts it, or its cache index
// if the same frame was sent recently.
func (d *Driver) publish(fb []byte) error {
	payload, err := d.encode(display.Image(fb).Pix)
	if err != nil {
		return err
	}
	hash := xxhash.Sum64(payload)

	d.mu.Lock()
	d.current = payload
	var msg []byte
	if idx := d.frames.index(hash); idx != -1 {
		msg = binary.LittleEndian.AppendUint16([]byte{FrameCache}, uint16(idx))
	} else {
		idx = d.frames.add(hash, payload)
		msg = binary.LittleEndian.AppendUint16([]byte{Frame}, uint16(idx))
		msg = append(msg, payload...)
	}
	d.mu.Unlock()

	d.hub.send(msg)
	return nil
}

// encode compresses an RGBA frame with brotli, unless compression
// is disabled.
func (d *Driver) encode(rgba []byte) ([]byte, error) {
	if d.quality == 0 {
		return rgba, nil
	}

	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, d.quality)
	if _, err := w.Write(rgba); err != nil {
		return nil, fmt.Errorf("compressing frame: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compressing frame: %w", err)
	}
	return buf.Bytes(), nil
}

// sync sends a new client its ID, the frame cache and the current
// frame. It runs on the hub goroutine.
func (d *Driver) sync(c *client) {
	compressed := uint8(0)
	if d.quality > 0 {
		compressed = 1
	}
	c.send <- []byte{ClientInfo, c.id, compressed}

	d.mu.Lock()
	defer d.mu.Unlock()

	data := []byte{FrameCacheSync}
	for i, e := range d.frames.entries {
		if e.data == nil {
			continue
		}
		data = binary.LittleEndian.AppendUint32(data, uint32(len(e.data)))
		data = binary.LittleEndian.AppendUint16(data, uint16(i))
		data = append(data, e.data...)
	}
	c.send <- data

	if d.current != nil {
		c.send <- append([]byte{FrameSync}, d.current...)
	}
}
