// Package headless provides a display driver without any output,
// used for automated runs. It counts frames, digests the last one
// with xxhash and can save it as a PNG screenshot.
package headless

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/config"
	"github.com/thelolagemann/dmgcore/pkg/display"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"golang.org/x/image/draw"
)

// Driver is the headless display driver.
type Driver struct {
	frames     int
	screenshot string
	scale      int
	log        log.Logger

	count  int
	last   []byte
	digest uint64
}

var _ display.Driver = (*Driver)(nil)

// New returns a headless driver configured by cfg.
func New(cfg config.Headless, l log.Logger) *Driver {
	if l == nil {
		l = log.NewNullLogger()
	}
	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	return &Driver{
		frames:     cfg.Frames,
		screenshot: cfg.Screenshot,
		scale:      scale,
		log:        log.WithField(l, "component", "headless"),
	}
}

// Start consumes frames until the configured number of frames has
// been received, ctx is cancelled or fb is closed.
func (d *Driver) Start(ctx context.Context, fb <-chan []byte, _ *display.Buttons) error {
	for {
		select {
		case <-ctx.Done():
			return d.finish()
		case frame, ok := <-fb:
			if !ok {
				return d.finish()
			}
			d.count++
			d.last = frame
			if d.frames > 0 && d.count >= d.frames {
				return d.finish()
			}
		}
	}
}

// Frames returns the number of frames received.
func (d *Driver) Frames() int {
	return d.count
}

// Digest returns the xxhash digest of the last frame received.
func (d *Driver) Digest() uint64 {
	return d.digest
}

func (d *Driver) finish() error {
	if d.last == nil {
		d.log.Warnf("no frames received")
		return nil
	}

	d.digest = xxhash.Sum64(d.last)
	d.log.Infof("%d frames, last frame %016x", d.count, d.digest)

	if d.screenshot == "" {
		return nil
	}
	if err := d.save(d.screenshot); err != nil {
		return fmt.Errorf("saving screenshot: %w", err)
	}
	d.log.Infof("saved screenshot to %s", d.screenshot)
	return nil
}

// save writes the last frame, scaled by the configured factor, as a PNG.
func (d *Driver) save(path string) error {
	src := display.Image(d.last)
	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*d.scale, ppu.ScreenHeight*d.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
