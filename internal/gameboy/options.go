package gameboy

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ppu"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// Opt is a function that modifies a GameBoy
// instance before its components are created.
type Opt func(gb *GameBoy)

// Debug enables the CPU instruction trace.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		if log != nil {
			gb.Logger = log
		}
	}
}

// WithBootROM sets the boot ROM for the emulator. With a boot ROM
// the emulator starts at 0x0000 with every register cleared, and
// the boot ROM is left to initialise the hardware.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootImage = rom
	}
}

// WithSerialOutput forwards every byte written to the serial data
// register to w.
func WithSerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serial = w
	}
}

// WithDisplay sets the handler that receives every completed frame.
func WithDisplay(handler ppu.FrameHandler) Opt {
	return func(gb *GameBoy) {
		gb.handler = handler
	}
}

// WithInput sets the source of button state, sampled every tick.
func WithInput(in joypad.Input) Opt {
	return func(gb *GameBoy) {
		gb.input = in
	}
}

// Speed sets the speed multiplier of Run, clamped to [0, 16].
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.speed = utils.Clamp(0, speed, 16)
	}
}
