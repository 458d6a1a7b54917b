// Package serial provides a stub of the Game Boy serial port.
// No link partner or transfer timing is emulated; every byte
// written to types.SB is forwarded verbatim to an output sink,
// which test ROMs commonly use to report their results.
package serial

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/types"
)

// Controller is the serial controller.
type Controller struct {
	data    uint8 // types.SB
	control uint8 // types.SC

	out io.Writer
}

// NewController creates a new Controller with SB and SC mapped
// into the given hardware table. Bytes written to SB are copied
// to out, which may be nil to discard them.
func NewController(h *types.HardwareRegisters, out io.Writer) *Controller {
	c := &Controller{out: out}
	h.RegisterHardware(
		types.SB,
		func(v uint8) {
			c.data = v
			if c.out != nil {
				// write errors are ignored
				_, _ = c.out.Write([]byte{v})
			}
		}, func() uint8 {
			return c.data
		},
	)
	h.RegisterHardware(
		types.SC,
		func(v uint8) {
			c.control = v & 0x81
		}, func() uint8 {
			return c.control | 0x7E // bits 1-6 are unused
		},
	)

	return c
}

// Attach replaces the output sink.
func (c *Controller) Attach(out io.Writer) {
	c.out = out
}
