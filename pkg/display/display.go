// Package display defines the frontends a GameBoy can be shown
// through. A Driver consumes frames and produces button state, the
// emulator is never aware of which driver is in use.
package display

import (
	"context"
	"image"
	"sync/atomic"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
)

// FrameSize is the size of a frame in bytes, 3 bytes per pixel.
const FrameSize = ppu.ScreenWidth * ppu.ScreenHeight * 3

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Start runs the driver until ctx is cancelled, the frame
	// channel is closed, or the driver decides to stop. Button
	// state reported by the user is written to buttons.
	Start(ctx context.Context, fb <-chan []byte, buttons *Buttons) error
}

// Buttons holds the state of the eight buttons. It is safe for
// concurrent use, so a driver may update it while the emulator
// samples it every tick.
type Buttons struct {
	state atomic.Uint32
}

var _ joypad.Input = (*Buttons)(nil)

// Press presses a button.
func (b *Buttons) Press(button joypad.Button) {
	for {
		old := b.state.Load()
		if b.state.CompareAndSwap(old, old|1<<button) {
			return
		}
	}
}

// Release releases a button.
func (b *Buttons) Release(button joypad.Button) {
	for {
		old := b.state.Load()
		if b.state.CompareAndSwap(old, old&^(1<<button)) {
			return
		}
	}
}

// Pressed reports whether the button is held.
func (b *Buttons) Pressed(button joypad.Button) bool {
	return b.state.Load()&(1<<button) != 0
}

// Handler returns a ppu.FrameHandler that copies every frame and
// sends it to fb. Frames are dropped while fb is full, so a slow
// driver never stalls the emulator.
func Handler(fb chan<- []byte) ppu.FrameHandler {
	return func(frame *ppu.Frame) {
		select {
		case fb <- Bytes(frame):
		default:
		}
	}
}

// Bytes flattens a frame into a new RGB byte slice.
func Bytes(frame *ppu.Frame) []byte {
	b := make([]byte, 0, FrameSize)
	for y := range frame {
		for x := range frame[y] {
			b = append(b, frame[y][x][:]...)
		}
	}
	return b
}

// Image converts an RGB frame, as produced by Bytes, into an image.
func Image(fb []byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for i := 0; i < ppu.ScreenWidth*ppu.ScreenHeight && i*3+2 < len(fb); i++ {
		img.Pix[i*4] = fb[i*3]
		img.Pix[i*4+1] = fb[i*3+1]
		img.Pix[i*4+2] = fb[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img
}
