// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// step is the largest number of cycles fed through the overflow
// detection at once. It must stay below the fastest timer period
// (16 cycles) or a carry out of the selected divider bit could be
// missed.
const step = 8

// masks holds, for each clock select value of TAC, the mask of the
// divider bits below the bit whose carry increments TIMA.
//
//	00: 1024 cycles
//	01: 16 cycles
//	10: 64 cycles
//	11: 256 cycles
var masks = [4]uint16{1023, 15, 63, 255}

// Controller is a timer controller. It owns the 16-bit divider
// and the TIMA, TMA and TAC registers.
//
// TIMA is incremented whenever adding elapsed cycles to the divider
// carries out of the bit selected by TAC, which is detected the same
// way the CPU detects a half carry. When TIMA overflows it is
// reloaded from TMA, and the timer interrupt is queued in a single
// pending slot. The slot is only flushed into IF at the start of the
// next call to Advance, so the interrupt becomes visible one tick
// after the overflow itself.
type Controller struct {
	divider uint16 // internal system counter, DIV is the upper byte

	tima uint8
	tma  uint8
	tac  uint8

	pending uint8 // interrupt flags waiting for the next Advance

	irq *interrupts.Service
}

// NewController returns a new timer controller with its registers
// mapped into the given hardware table.
func NewController(h *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{irq: irq}

	h.RegisterHardware(
		types.DIV,
		func(v uint8) {
			// any write clears the whole counter
			c.divider = 0
		}, func() uint8 {
			return uint8(c.divider >> 8)
		},
	)
	h.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			c.tima = v
		}, func() uint8 {
			return c.tima
		},
	)
	h.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
		}, func() uint8 {
			return c.tma
		},
	)
	h.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0x07
		}, func() uint8 {
			return c.tac | 0xF8
		},
	)

	return c
}

// Advance moves the timer forward by the given number of cycles.
//
// Any interrupt queued by an overflow during the previous call is
// requested first, before the new cycles are accounted for.
func (c *Controller) Advance(cycles uint16) {
	if c.pending != 0 {
		c.irq.Request(c.pending)
		c.pending = 0
	}

	for cycles > 0 {
		amount := cycles
		if amount > step {
			amount = step
		}
		c.tick(amount)
		cycles -= amount
	}
}

func (c *Controller) tick(amount uint16) {
	old := c.divider
	c.divider += amount

	if !c.Enabled() {
		return
	}

	mask := masks[c.tac&0b11]
	if (old&mask)+(amount&mask) <= mask {
		return
	}

	c.tima++
	if c.tima == 0 {
		c.tima = c.tma
		c.pending |= interrupts.TimerFlag
	}
}

// Enabled reports whether TAC has the timer enabled.
func (c *Controller) Enabled() bool {
	return c.tac&types.Bit2 != 0
}

// Divider returns the full 16-bit internal counter.
func (c *Controller) Divider() uint16 {
	return c.divider
}

// SetDivider sets the internal counter, used to reproduce the
// state the boot ROM leaves behind.
func (c *Controller) SetDivider(v uint16) {
	c.divider = v
}
