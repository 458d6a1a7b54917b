package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/ppu/palette"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newPPU(t *testing.T, lcdc uint8) (*PPU, *mmu.MMU) {
	t.Helper()
	cart, err := cartridge.NewCartridge(make([]byte, 2*cartridge.BankSize))
	require.NoError(t, err)
	m := mmu.NewMMU(cart, nil, nil)
	m.Write(types.LCDC, lcdc)
	m.Write(types.BGP, 0xE4)
	m.Write(types.OBP0, 0xE4)
	m.Write(types.OBP1, 0xE4)

	// tile 1: colour 1, tile 2: colour 2, tile 3: colour 3
	for tile := uint16(1); tile <= 3; tile++ {
		for row := uint16(0); row < 8; row++ {
			address := 0x8000 + tile*16 + row*2
			if tile&1 != 0 {
				m.Write(address, 0xFF)
			}
			if tile&2 != 0 {
				m.Write(address+1, 0xFF)
			}
		}
	}
	return New(m), m
}

// advance feeds the PPU in 4 cycle steps, as the CPU would.
func advance(p *PPU, cycles int) {
	for ; cycles > 0; cycles -= 4 {
		p.Advance(4)
	}
}

// renderLine advances a fresh PPU until the given line has been
// transferred.
func renderLine(p *PPU, line int) {
	advance(p, line*LineCycles+OAMCycles+TransferCycles)
}

func shadeAt(p *PPU, x, y int) palette.Shade {
	return p.Frame()[y][x]
}

func TestPPU_Modes(t *testing.T) {
	p, m := newPPU(t, 0x91)
	assert.Equal(t, lcd.OAM, p.Mode())

	advance(p, OAMCycles)
	assert.Equal(t, lcd.VRAM, p.Mode())
	assert.Equal(t, lcd.VRAM, m.Read(types.STAT)&0b11)

	advance(p, TransferCycles)
	assert.Equal(t, lcd.HBlank, p.Mode())

	advance(p, HBlankCycles)
	assert.Equal(t, lcd.OAM, p.Mode())
	assert.Equal(t, uint8(1), m.Read(types.LY))
	assert.Equal(t, uint32(0), p.Cycles())
}

func TestPPU_LargeAdvance(t *testing.T) {
	p, m := newPPU(t, 0x91)
	p.Advance(LineCycles*3 + 10)
	assert.Equal(t, uint8(3), m.Read(types.LY))
	assert.Equal(t, lcd.OAM, p.Mode())
	assert.Equal(t, uint32(10), p.Cycles())
}

func TestPPU_Frame(t *testing.T) {
	p, m := newPPU(t, 0x91)
	var handed int
	p.OnFrame(func(frame *Frame) {
		handed++
		assert.Same(t, p.Frame(), frame)
	})

	assert.Equal(t, 70224, FrameCycles)
	advance(p, FrameCycles)

	assert.Equal(t, uint8(0), m.Read(types.LY))
	assert.Equal(t, lcd.OAM, p.Mode())
	assert.Equal(t, uint32(0), p.Cycles())
	assert.Equal(t, uint64(1), p.Frames())
	assert.Equal(t, 1, handed)
	assert.NotZero(t, m.IRQ.Flag&interrupts.VBlankFlag)
}

func TestPPU_VBlank(t *testing.T) {
	p, m := newPPU(t, 0x91)
	advance(p, ScreenHeight*LineCycles-4)
	assert.Zero(t, m.IRQ.Flag&interrupts.VBlankFlag)
	assert.Equal(t, uint64(0), p.Frames())

	advance(p, 4)
	assert.Equal(t, lcd.VBlank, p.Mode())
	assert.Equal(t, uint8(144), m.Read(types.LY))
	assert.NotZero(t, m.IRQ.Flag&interrupts.VBlankFlag)
	assert.Equal(t, uint64(1), p.Frames())

	for line := 145; line <= 153; line++ {
		advance(p, LineCycles)
		assert.Equal(t, uint8(line), m.Read(types.LY))
		assert.Equal(t, lcd.VBlank, p.Mode())
	}
	advance(p, LineCycles)
	assert.Equal(t, uint8(0), m.Read(types.LY))
	assert.Equal(t, lcd.OAM, p.Mode())
}

func TestPPU_StatInterrupt(t *testing.T) {
	t.Run("hblank edge", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(types.STAT, 0x08)
		advance(p, OAMCycles+TransferCycles)
		assert.NotZero(t, m.IRQ.Flag&interrupts.LCDFlag)

		m.IRQ.Clear(interrupts.LCDFlag)
		advance(p, 100)
		assert.Zero(t, m.IRQ.Flag&interrupts.LCDFlag, "line stays high, no new edge")

		advance(p, HBlankCycles-100+OAMCycles+TransferCycles)
		assert.NotZero(t, m.IRQ.Flag&interrupts.LCDFlag, "next hblank is a new edge")
	})
	t.Run("oam source in vblank", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(types.STAT, 0x20)
		advance(p, 143*LineCycles+OAMCycles+TransferCycles)
		m.IRQ.Clear(interrupts.LCDFlag)

		advance(p, HBlankCycles)
		assert.Equal(t, lcd.VBlank, p.Mode())
		assert.NotZero(t, m.IRQ.Flag&interrupts.LCDFlag)
	})
	t.Run("coincidence", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(types.LYC, 2)
		m.Write(types.STAT, 0x40)
		advance(p, 2*LineCycles-4)
		assert.Zero(t, m.IRQ.Flag&interrupts.LCDFlag)
		assert.Zero(t, m.Read(types.STAT)&types.Bit2)

		advance(p, 4)
		assert.NotZero(t, m.IRQ.Flag&interrupts.LCDFlag)
		assert.NotZero(t, m.Read(types.STAT)&types.Bit2)
	})
	t.Run("no source", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		advance(p, FrameCycles)
		assert.Zero(t, m.IRQ.Flag&interrupts.LCDFlag)
	})
}

func TestPPU_Disabled(t *testing.T) {
	p, m := newPPU(t, 0x91)
	advance(p, 10*LineCycles+20)

	m.Write(types.LCDC, 0x11)
	advance(p, 2*FrameCycles)
	assert.Equal(t, uint8(0), m.Read(types.LY))
	assert.Equal(t, lcd.HBlank, p.Mode())
	assert.Equal(t, uint64(0), p.Frames())

	m.Write(types.LCDC, 0x91)
	p.Advance(4)
	assert.Equal(t, lcd.OAM, p.Mode())
	assert.Equal(t, uint32(4), p.Cycles())
}

func TestPPU_Background(t *testing.T) {
	t.Run("tile", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(0x9800, 1)
		renderLine(p, 0)
		for x := 0; x < 8; x++ {
			assert.Equal(t, palette.Shades[1], shadeAt(p, x, 0))
		}
		assert.Equal(t, palette.Shades[0], shadeAt(p, 8, 0))
	})
	t.Run("palette", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(0x9800, 1)
		m.Write(types.BGP, 0x0C) // colour 1 -> black
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[3], shadeAt(p, 0, 0))
	})
	t.Run("scroll x", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(0x9800, 1)
		m.Write(types.SCX, 4)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 3, 0))
		assert.Equal(t, palette.Shades[0], shadeAt(p, 4, 0))
	})
	t.Run("scroll wraps", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		m.Write(0x9800, 1)
		m.Write(types.SCX, 252)
		m.Write(types.SCY, 255)
		m.Write(0x9800+31*32, 2) // row 31, column 0
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[0], shadeAt(p, 3, 0))
		assert.Equal(t, palette.Shades[2], shadeAt(p, 4, 0))
		advance(p, LineCycles)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 4, 1), "line 1 wraps to map row 0")
	})
	t.Run("signed addressing", func(t *testing.T) {
		p, m := newPPU(t, 0x81)
		for row := uint16(0); row < 8; row++ {
			m.Write(0x9000+row*2+1, 0xFF) // tile 0 at 0x9000, colour 2
		}
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[2], shadeAt(p, 0, 0))
	})
	t.Run("disabled", func(t *testing.T) {
		p, m := newPPU(t, 0x90)
		m.Write(0x9800, 3)
		m.Write(types.BGP, 0xE5) // colour 0 -> light grey
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 0, 0))
	})
	t.Run("debug", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		p.Debug.BackgroundDisabled = true
		m.Write(0x9800, 3)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[0], shadeAt(p, 0, 0))
	})
}

func TestPPU_Window(t *testing.T) {
	p, m := newPPU(t, 0x91|0x20|0x40)
	m.Write(0x9800, 1)
	m.Write(0x9C00, 3)
	m.Write(types.WY, 1)
	m.Write(types.WX, 7+80)

	renderLine(p, 0)
	assert.Equal(t, palette.Shades[0], shadeAt(p, 80, 0), "window starts below WY")

	advance(p, LineCycles)
	assert.Equal(t, palette.Shades[1], shadeAt(p, 0, 1))
	assert.Equal(t, palette.Shades[0], shadeAt(p, 79, 1))
	assert.Equal(t, palette.Shades[3], shadeAt(p, 80, 1))
	assert.Equal(t, palette.Shades[3], shadeAt(p, 87, 1))
	assert.Equal(t, palette.Shades[0], shadeAt(p, 88, 1))
}

func writeSprite(m *mmu.MMU, index int, y, x, tile, attr uint8) {
	address := 0xFE00 + uint16(index)*4
	m.Write(address, y)
	m.Write(address+1, x)
	m.Write(address+2, tile)
	m.Write(address+3, attr)
}

func TestPPU_Sprites(t *testing.T) {
	t.Run("draw", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		writeSprite(m, 0, 16, 8, 3, 0)
		renderLine(p, 0)
		for x := 0; x < 8; x++ {
			assert.Equal(t, palette.Shades[3], shadeAt(p, x, 0))
		}
		assert.Equal(t, palette.Shades[0], shadeAt(p, 8, 0))
	})
	t.Run("second palette", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		writeSprite(m, 0, 16, 8, 3, 0x10)
		m.Write(types.OBP0, 0x00)
		m.Write(types.OBP1, 0x40) // colour 3 -> light grey
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 0, 0))
	})
	t.Run("partially offscreen", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		writeSprite(m, 0, 12, 4, 3, 0)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[3], shadeAt(p, 3, 0))
		assert.Equal(t, palette.Shades[0], shadeAt(p, 4, 0))
	})
	t.Run("transparent", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		m.Write(0x9800, 1)
		writeSprite(m, 0, 16, 8, 0, 0)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 0, 0))
	})
	t.Run("behind background", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		m.Write(0x9800, 1)
		writeSprite(m, 0, 16, 12, 3, 0x80)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 4, 0), "hidden behind colour 1")
		assert.Equal(t, palette.Shades[3], shadeAt(p, 8, 0), "visible over colour 0")
	})
	t.Run("flip x", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		for row := uint16(0); row < 8; row++ {
			m.Write(0x8040+row*2, 0x80) // tile 4, only the leftmost pixel
		}
		writeSprite(m, 0, 16, 8, 4, 0x20)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[0], shadeAt(p, 0, 0))
		assert.Equal(t, palette.Shades[1], shadeAt(p, 7, 0))
	})
	t.Run("flip y", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		m.Write(0x8040+7*2, 0xFF) // tile 4, only the bottom row
		writeSprite(m, 0, 16, 8, 4, 0x40)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[1], shadeAt(p, 0, 0))
	})
	t.Run("tall sprites", func(t *testing.T) {
		p, m := newPPU(t, 0x97)
		writeSprite(m, 0, 16, 8, 3, 0)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[2], shadeAt(p, 0, 0), "bit 0 of the tile index is ignored")
		advance(p, 8*LineCycles)
		assert.Equal(t, palette.Shades[3], shadeAt(p, 0, 8), "lower half uses the next tile")
	})
	t.Run("ten per line", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		for i := 0; i < 11; i++ {
			writeSprite(m, i, 16, uint8(8+i*8), 3, 0)
		}
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[3], shadeAt(p, 79, 0))
		assert.Equal(t, palette.Shades[0], shadeAt(p, 80, 0))
	})
	t.Run("lower x wins", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		writeSprite(m, 0, 16, 12, 2, 0)
		writeSprite(m, 1, 16, 8, 3, 0)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[3], shadeAt(p, 4, 0))
		assert.Equal(t, palette.Shades[2], shadeAt(p, 8, 0))
	})
	t.Run("equal x lower index wins", func(t *testing.T) {
		p, m := newPPU(t, 0x93)
		writeSprite(m, 0, 16, 8, 2, 0)
		writeSprite(m, 1, 16, 8, 3, 0)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[2], shadeAt(p, 0, 0))
	})
	t.Run("disabled", func(t *testing.T) {
		p, m := newPPU(t, 0x91)
		writeSprite(m, 0, 16, 8, 3, 0)
		renderLine(p, 0)
		assert.Equal(t, palette.Shades[0], shadeAt(p, 0, 0))
	})
}
