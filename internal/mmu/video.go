package mmu

import (
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

// video holds the LCD registers. The CPU accesses them through the
// register table, the PPU updates the read only parts through the
// MMU's privileged accessors.
type video struct {
	lcdc uint8
	stat uint8 // bits 3-6, the interrupt sources
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	mode        lcd.Mode
	coincidence bool
}

func newVideo(h *types.HardwareRegisters) *video {
	v := &video{}

	h.RegisterHardware(types.LCDC, func(b uint8) { v.lcdc = b }, func() uint8 { return v.lcdc })
	h.RegisterHardware(
		types.STAT,
		func(b uint8) {
			v.stat = b & 0x78
		}, func() uint8 {
			s := 0x80 | v.stat | v.mode
			if v.coincidence {
				s |= types.Bit2
			}
			return s
		},
	)
	h.RegisterHardware(types.SCY, func(b uint8) { v.scy = b }, func() uint8 { return v.scy })
	h.RegisterHardware(types.SCX, func(b uint8) { v.scx = b }, func() uint8 { return v.scx })
	h.RegisterHardware(types.LY, types.NoWrite, func() uint8 { return v.ly })
	h.RegisterHardware(
		types.LYC,
		func(b uint8) {
			v.lyc = b
			v.compare()
		}, func() uint8 {
			return v.lyc
		},
	)
	h.RegisterHardware(types.BGP, func(b uint8) { v.bgp = b }, func() uint8 { return v.bgp })
	h.RegisterHardware(types.OBP0, func(b uint8) { v.obp0 = b }, func() uint8 { return v.obp0 })
	h.RegisterHardware(types.OBP1, func(b uint8) { v.obp1 = b }, func() uint8 { return v.obp1 })
	h.RegisterHardware(types.WY, func(b uint8) { v.wy = b }, func() uint8 { return v.wy })
	h.RegisterHardware(types.WX, func(b uint8) { v.wx = b }, func() uint8 { return v.wx })
	v.compare()

	return v
}

func (v *video) compare() {
	v.coincidence = v.ly == v.lyc
}

// SetLY sets the current scanline and updates the LYC coincidence flag.
func (m *MMU) SetLY(ly uint8) {
	m.video.ly = ly
	m.video.compare()
}

// LY returns the current scanline.
func (m *MMU) LY() uint8 {
	return m.video.ly
}

// SetMode sets the mode reported in bits 0-1 of types.STAT.
func (m *MMU) SetMode(mode lcd.Mode) {
	m.video.mode = mode & 0b11
}

// Mode returns the mode reported in types.STAT.
func (m *MMU) Mode() lcd.Mode {
	return m.video.mode
}

// RequestInterrupt requests the given interrupt.
func (m *MMU) RequestInterrupt(flag uint8) {
	m.IRQ.Request(flag)
}
