// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns every memory region and every memory mapped register, and
// routes all reads and writes to them by address.
package mmu

import (
	"io"

	"github.com/thelolagemann/dmgcore/internal/boot"
	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/interrupts"
	"github.com/thelolagemann/dmgcore/internal/joypad"
	"github.com/thelolagemann/dmgcore/internal/ram"
	"github.com/thelolagemann/dmgcore/internal/serial"
	"github.com/thelolagemann/dmgcore/internal/timer"
	"github.com/thelolagemann/dmgcore/internal/types"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// region handles the reads and writes of one 256 byte page.
type region struct {
	read  func(address uint16) uint8
	write func(address uint16, value uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// one region per page, indexed by the upper byte of the address
	pages [256]*region

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM      *boot.ROM
	bootDisabled bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	vRAM *ram.RAM

	// 0xA000 - 0xBFFF - External RAM (not emulated)

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *ram.RAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam *ram.RAM

	// 0xFEA0 - 0xFEFF - Unusable

	// 0xFF00 - 0xFF7F - I/O Registers
	// 0xFFFF          - Interrupt Enable
	registers types.HardwareRegisters

	// 0xFF80 - 0xFFFE - High RAM (127B)
	hRAM *ram.RAM

	IRQ    *interrupts.Service
	Timer  *timer.Controller
	Joypad *joypad.State
	Serial *serial.Controller
	video  *video

	dma uint8

	Log log.Logger
}

// NewMMU returns a new MMU for the given cartridge. If bootROM is nil,
// the boot ROM is considered already disabled.
func NewMMU(cart *cartridge.Cartridge, bootROM *boot.ROM, l log.Logger) *MMU {
	if l == nil {
		l = log.NewNullLogger()
	}
	m := &MMU{
		bootROM:      bootROM,
		bootDisabled: bootROM == nil,
		Cart:         cart,
		vRAM:         ram.NewRAM(0x2000),
		wRAM:         ram.NewRAM(0x2000),
		oam:          ram.NewRAM(0x100),
		hRAM:         ram.NewRAM(0x80),
		Log:          l,
	}

	m.IRQ = interrupts.NewService(&m.registers)
	m.Timer = timer.NewController(&m.registers, m.IRQ)
	m.Joypad = joypad.New(&m.registers, m.IRQ)
	m.Serial = serial.NewController(&m.registers, nil)
	m.video = newVideo(&m.registers)

	m.registers.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			if v != 0 && !m.bootDisabled {
				m.bootDisabled = true
				m.Log.Debugf("boot rom disabled")
			}
		}, func() uint8 {
			if m.bootDisabled {
				return 1
			}
			return 0
		},
	)
	m.registers.RegisterHardware(
		types.DMA,
		func(v uint8) {
			m.dma = v
			m.transferOAM(uint16(v) << 8)
		}, func() uint8 {
			return m.dma
		},
	)

	m.init()

	return m
}

func (m *MMU) init() {
	regions := []region{
		{read: m.readCart, write: m.writeCart},
		{read: m.Cart.Read, write: m.writeCart},
		{read: readOffset(m.vRAM.Read, 0x8000), write: writeOffset(m.vRAM.Write, 0x8000)},
		{read: unmapped, write: ignore},
		{read: readOffset(m.wRAM.Read, 0xC000), write: writeOffset(m.wRAM.Write, 0xC000)},
		{read: m.readHigh, write: m.writeHigh},
	}

	// 0x0000 - 0x00FF - boot ROM or cartridge
	m.pages[0x00] = &regions[0]

	// 0x0100 - 0x7FFF - ROM
	for i := 0x01; i < 0x80; i++ {
		m.pages[i] = &regions[1]
	}

	// 0x8000 - 0x9FFF - VRAM (8kB)
	for i := 0x80; i < 0xA0; i++ {
		m.pages[i] = &regions[2]
	}

	// 0xA000 - 0xBFFF - external RAM (8kB)
	for i := 0xA0; i < 0xC0; i++ {
		m.pages[i] = &regions[3]
	}

	// 0xC000 - 0xFDFF - work RAM (8kB) and its echo, which lands on
	// the same bytes as the work RAM is masked to 8kB
	for i := 0xC0; i < 0xFE; i++ {
		m.pages[i] = &regions[4]
	}

	// 0xFE00 - 0xFFFF - OAM, unusable, I/O, high RAM and IE
	for i := 0xFE; i < 0x100; i++ {
		m.pages[i] = &regions[5]
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

func unmapped(uint16) uint8 { return 0xFF }

func ignore(uint16, uint8) {}

func (m *MMU) readCart(address uint16) uint8 {
	if !m.bootDisabled {
		return m.bootROM.Read(address)
	}

	return m.Cart.Read(address)
}

func (m *MMU) writeCart(address uint16, value uint8) {
	before := m.Cart.Bank()
	m.Cart.Write(address, value)
	if after := m.Cart.Bank(); after != before {
		m.Log.Debugf("rom bank %d selected", after)
	}
}

func (m *MMU) readHigh(address uint16) uint8 {
	switch {
	case address < 0xFEA0:
		return m.oam.Read(address - 0xFE00)
	case address < 0xFF00:
		return 0xFF
	case address < 0xFF80 || address == types.IE:
		return m.registers.Read(address)
	default:
		return m.hRAM.Read(address - 0xFF80)
	}
}

func (m *MMU) writeHigh(address uint16, value uint8) {
	switch {
	case address < 0xFEA0:
		m.oam.Write(address-0xFE00, value)
	case address < 0xFF00:
		// unusable
	case address < 0xFF80 || address == types.IE:
		m.registers.Write(address, value)
	default:
		m.hRAM.Write(address-0xFF80, value)
	}
}

// transferOAM copies 160 bytes from source into OAM. The copy is
// performed instantly rather than over 160 machine cycles.
func (m *MMU) transferOAM(source uint16) {
	for i := uint16(0); i < 0xA0; i++ {
		m.oam.Write(i, m.Read(source+i))
	}
}

// Read returns the value at the given address. Every address can be
// read, unmapped and write only locations read as 0xFF.
func (m *MMU) Read(address uint16) uint8 {
	return m.pages[address>>8].read(address)
}

// Write writes the value to the given address. Writes to read only
// and unmapped locations are ignored.
func (m *MMU) Write(address uint16, value uint8) {
	m.pages[address>>8].write(address, value)
}

// AdvanceTimer advances the divider and timer by the given number of
// cycles. See timer.Controller.Advance.
func (m *MMU) AdvanceTimer(cycles uint16) {
	m.Timer.Advance(cycles)
}

// BootROMDisabled reports whether the boot ROM has been unmapped.
func (m *MMU) BootROMDisabled() bool {
	return m.bootDisabled
}

// AttachSerial sets the sink that bytes written to types.SB are
// copied to.
func (m *MMU) AttachSerial(w io.Writer) {
	m.Serial.Attach(w)
}
