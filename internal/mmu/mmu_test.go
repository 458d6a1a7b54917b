package mmu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/ppu/lcd"
	"github.com/thelolagemann/dmgcore/internal/types"
)

func newMMU(t *testing.T, withBoot bool) *MMU {
	t.Helper()
	rom := make([]byte, 4*cartridge.BankSize)
	for i := range rom {
		rom[i] = byte(i / cartridge.BankSize)
	}
	cart, err := cartridge.NewCartridge(rom)
	require.NoError(t, err)

	var b *boot.ROM
	if withBoot {
		raw := bytes.Repeat([]byte{0xAA}, boot.Size)
		b, err = boot.LoadBootROM(raw)
		require.NoError(t, err)
	}
	return NewMMU(cart, b, nil)
}

func TestMMU_BootROM(t *testing.T) {
	m := newMMU(t, true)
	assert.Equal(t, uint8(0xAA), m.Read(0x0000), "boot rom shadows cartridge")
	assert.Equal(t, uint8(0xAA), m.Read(0x00FF))
	assert.Equal(t, uint8(0x00), m.Read(0x0100), "cartridge visible past the boot rom")
	assert.Equal(t, uint8(0), m.Read(types.BDIS))

	m.Write(types.BDIS, 0x00)
	assert.False(t, m.BootROMDisabled(), "zero does not disable the boot rom")

	m.Write(types.BDIS, 0x01)
	assert.True(t, m.BootROMDisabled())
	assert.Equal(t, uint8(0x00), m.Read(0x0000))
	assert.Equal(t, uint8(1), m.Read(types.BDIS))

	m.Write(types.BDIS, 0x00)
	assert.True(t, m.BootROMDisabled(), "boot disable is sticky")

	assert.True(t, newMMU(t, false).BootROMDisabled(), "no boot rom starts disabled")
}

func TestMMU_Regions(t *testing.T) {
	m := newMMU(t, false)

	t.Run("vram", func(t *testing.T) {
		m.Write(0x8000, 0x11)
		m.Write(0x9FFF, 0x22)
		assert.Equal(t, uint8(0x11), m.Read(0x8000))
		assert.Equal(t, uint8(0x22), m.Read(0x9FFF))
	})
	t.Run("external ram", func(t *testing.T) {
		m.Write(0xA000, 0x33)
		assert.Equal(t, uint8(0xFF), m.Read(0xA000))
	})
	t.Run("echo", func(t *testing.T) {
		m.Write(0xC123, 0x44)
		assert.Equal(t, uint8(0x44), m.Read(0xE123))
		m.Write(0xFDFF, 0x55)
		assert.Equal(t, uint8(0x55), m.Read(0xDDFF))
		for addr := uint16(0xE000); addr < 0xFE00; addr += 0x1FF {
			assert.Equal(t, m.Read(addr-0x2000), m.Read(addr))
		}
	})
	t.Run("oam", func(t *testing.T) {
		m.Write(0xFE9F, 0x66)
		assert.Equal(t, uint8(0x66), m.Read(0xFE9F))
	})
	t.Run("unusable", func(t *testing.T) {
		m.Write(0xFEA0, 0x77)
		assert.Equal(t, uint8(0xFF), m.Read(0xFEA0))
	})
	t.Run("unmapped io", func(t *testing.T) {
		m.Write(0xFF7F, 0x12)
		assert.Equal(t, uint8(0xFF), m.Read(0xFF7F))
		assert.Equal(t, uint8(0xFF), m.Read(0xFF03))
	})
	t.Run("high ram", func(t *testing.T) {
		m.Write(0xFF80, 0x88)
		m.Write(0xFFFE, 0x99)
		assert.Equal(t, uint8(0x88), m.Read(0xFF80))
		assert.Equal(t, uint8(0x99), m.Read(0xFFFE))
	})
	t.Run("interrupt enable", func(t *testing.T) {
		m.Write(types.IE, 0x1F)
		assert.Equal(t, uint8(0x1F), m.IRQ.Enable)
		assert.Equal(t, uint8(0xFF), m.Read(types.IE))
	})
}

func TestMMU_BankSelect(t *testing.T) {
	m := newMMU(t, false)
	assert.Equal(t, uint8(1), m.Read(0x4000))
	m.Write(0x2100, 0x03)
	assert.Equal(t, uint8(3), m.Read(0x4000))
	m.Write(0x2100, 0x00)
	assert.Equal(t, uint8(1), m.Read(0x4000))
	assert.Equal(t, uint8(0), m.Read(0x3FFF))
}

func TestMMU_Video(t *testing.T) {
	m := newMMU(t, false)

	m.Write(types.STAT, 0xFF)
	assert.Equal(t, uint8(0xF8|lcd.HBlank|types.Bit2), m.Read(types.STAT), "mode and coincidence bits are read only")

	m.SetMode(lcd.VRAM)
	m.Write(types.LYC, 0x05)
	assert.Equal(t, uint8(0xFB), m.Read(types.STAT))

	m.SetLY(0x05)
	assert.Equal(t, uint8(0xFF), m.Read(types.STAT))
	assert.Equal(t, uint8(0x05), m.Read(types.LY))

	m.Write(types.LY, 0x10)
	assert.Equal(t, uint8(0x05), m.LY(), "LY is read only")

	m.RequestInterrupt(interrupts.LCDFlag)
	assert.Equal(t, uint8(interrupts.LCDFlag|0xE0), m.Read(types.IF))
}

func TestMMU_DMA(t *testing.T) {
	m := newMMU(t, false)
	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xC100+i, uint8(i))
	}
	m.Write(types.DMA, 0xC1)
	for i := uint16(0); i < 0xA0; i++ {
		assert.Equal(t, uint8(i), m.Read(0xFE00+i))
	}
	assert.Equal(t, uint8(0xC1), m.Read(types.DMA))
}

func TestMMU_Timer(t *testing.T) {
	m := newMMU(t, false)
	m.Write(types.TAC, 0x05)
	m.Write(types.TIMA, 0xFF)
	m.AdvanceTimer(16)
	assert.Zero(t, m.IRQ.Flag&interrupts.TimerFlag)
	m.AdvanceTimer(4)
	assert.NotZero(t, m.IRQ.Flag&interrupts.TimerFlag)
}

func TestMMU_Serial(t *testing.T) {
	m := newMMU(t, false)
	var buf bytes.Buffer
	m.AttachSerial(&buf)
	m.Write(types.SB, 'o')
	m.Write(types.SB, 'k')
	assert.Equal(t, "ok", buf.String())
}

func TestMMU_Independent(t *testing.T) {
	a, b := newMMU(t, false), newMMU(t, false)
	a.Write(types.SCX, 0x42)
	assert.Equal(t, uint8(0x00), b.Read(types.SCX))
}
