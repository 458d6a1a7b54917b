// Package ppu implements the pixel processing unit of the DMG. The PPU
// is a passive state machine, advanced by the number of cycles each
// tick of the CPU consumed, which renders one scanline per pass
// through the transfer mode and hands a finished frame to its
// consumer once per 154 lines.
package ppu

import (
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

const (
	// OAMCycles is the length of mode 2, OAM search.
	//
	//	- Locks the OAM bus
	//	- STAT interrupt available via STAT.5
	//	- Occurs at the start of each visible line
	OAMCycles = 80
	// TransferCycles is the length of mode 3, pixel transfer. The
	// line is rendered when the mode ends.
	//
	//	- Locks both the OAM and VRAM buses
	//	- No STAT interrupts available
	TransferCycles = 172
	// HBlankCycles is the length of mode 0, horizontal blanking.
	//
	//	- STAT interrupt available via STAT.3
	HBlankCycles = 204
	// LineCycles is the length of a whole line.
	LineCycles = OAMCycles + TransferCycles + HBlankCycles
	// VBlankLines is the number of invisible lines, 144-153, spent
	// in mode 1.
	//
	//	- VBlank interrupt requested on entry
	//	- STAT interrupt available via STAT.4, or STAT.5
	VBlankLines = 10
	// FrameCycles is the length of a whole frame.
	FrameCycles = LineCycles * (ScreenHeight + VBlankLines)
)

// Frame is a finished picture, each pixel already resolved to an RGB
// shade.
type Frame [ScreenHeight][ScreenWidth][3]uint8

// FrameHandler receives every completed frame. The frame is reused
// for the next picture, so a handler that keeps it past the call
// must copy it.
type FrameHandler func(frame *Frame)

// Bus is the view of the address space the PPU needs. Registers and
// video memory are read through Read, while the read only parts of
// the LCD registers are updated through the privileged setters.
type Bus interface {
	Read(address uint16) uint8
	LY() uint8
	SetLY(ly uint8)
	SetMode(mode lcd.Mode)
	RequestInterrupt(flag uint8)
}

// Debug allows individual layers to be hidden.
type Debug struct {
	BackgroundDisabled bool
	WindowDisabled     bool
	SpritesDisabled    bool
}

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
type PPU struct {
	bus Bus

	mode    lcd.Mode
	cycles  uint32 // cycles spent in the current mode, or line in VBlank
	enabled bool   // LCDC.7 as last observed

	control lcd.Controller
	status  lcd.Status
	// statLine is the level of the STAT interrupt line after the
	// last update, an interrupt is requested on a rising edge only
	statLine bool

	frame   Frame
	frames  uint64
	handler FrameHandler

	Debug Debug
}

// New returns a new PPU at the start of line 0, in OAM search.
func New(bus Bus) *PPU {
	p := &PPU{
		bus:     bus,
		enabled: true,
	}
	p.bus.SetLY(0)
	p.setMode(lcd.OAM)
	return p
}

// OnFrame sets the handler called with every completed frame.
func (p *PPU) OnFrame(handler FrameHandler) {
	p.handler = handler
}

// Mode returns the current mode.
func (p *PPU) Mode() lcd.Mode {
	return p.mode
}

// Cycles returns the number of cycles spent in the current mode.
func (p *PPU) Cycles() uint32 {
	return p.cycles
}

// Frames returns the number of frames completed so far.
func (p *PPU) Frames() uint64 {
	return p.frames
}

// Enabled returns whether the LCD was on at the last Advance.
func (p *PPU) Enabled() bool {
	return p.enabled
}

// Frame returns the frame buffer.
func (p *PPU) Frame() *Frame {
	return &p.frame
}

// Advance moves the PPU forward by the given number of cycles,
// passing through as many modes as the cycles cover.
func (p *PPU) Advance(cycles uint32) {
	p.control.Set(p.bus.Read(types.LCDC))
	if !p.control.Enabled {
		if p.enabled {
			p.disable()
		}
		return
	}
	if !p.enabled {
		p.enable()
	}

	// a write to STAT or LYC may have raised the line
	p.updateStat()

	p.cycles += cycles
	for p.step() {
		p.updateStat()
	}
}

// step performs at most one mode transition, reporting whether one
// happened.
func (p *PPU) step() bool {
	switch p.mode {
	case lcd.OAM:
		if p.cycles < OAMCycles {
			return false
		}
		p.cycles -= OAMCycles
		p.setMode(lcd.VRAM)
	case lcd.VRAM:
		if p.cycles < TransferCycles {
			return false
		}
		p.cycles -= TransferCycles
		p.renderLine()
		p.setMode(lcd.HBlank)
	case lcd.HBlank:
		if p.cycles < HBlankCycles {
			return false
		}
		p.cycles -= HBlankCycles
		ly := p.bus.LY() + 1
		p.bus.SetLY(ly)
		if ly == ScreenHeight {
			p.setMode(lcd.VBlank)
			p.bus.RequestInterrupt(interrupts.VBlankFlag)
			p.frames++
			if p.handler != nil {
				p.handler(&p.frame)
			}
		} else {
			p.setMode(lcd.OAM)
		}
	case lcd.VBlank:
		if p.cycles < LineCycles {
			return false
		}
		p.cycles -= LineCycles
		ly := p.bus.LY() + 1
		if ly >= ScreenHeight+VBlankLines {
			p.bus.SetLY(0)
			p.setMode(lcd.OAM)
		} else {
			p.bus.SetLY(ly)
		}
	}
	return true
}

func (p *PPU) setMode(mode lcd.Mode) {
	p.mode = mode
	p.bus.SetMode(mode)
}

// updateStat recomputes the STAT interrupt line, requesting an
// interrupt when it goes from low to high.
func (p *PPU) updateStat() {
	p.status.Set(p.bus.Read(types.STAT))
	line := p.status.Line()
	if line && !p.statLine {
		p.bus.RequestInterrupt(interrupts.LCDFlag)
	}
	p.statLine = line
}

// disable freezes the PPU at line 0, reporting HBlank, until the
// LCD is turned back on.
func (p *PPU) disable() {
	p.enabled = false
	p.cycles = 0
	p.statLine = false
	p.bus.SetLY(0)
	p.setMode(lcd.HBlank)
}

// enable restarts the PPU from the start of line 0.
func (p *PPU) enable() {
	p.enabled = true
	p.cycles = 0
	p.bus.SetLY(0)
	p.setMode(lcd.OAM)
}
